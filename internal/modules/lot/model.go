// README: Parking lot aggregate.
package lot

import "parkd/internal/types"

type Lot struct {
	ID          types.ID
	CompanyID   types.ID
	Name        string
	Address     string
	Lat         float64
	Lng         float64
	Timezone    string
	CountryCode string
	Currency    string
}
