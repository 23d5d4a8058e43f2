// README: Holiday calendar entry.
package holiday

// Holiday is one non-working date for a country. Date is an ISO
// calendar date (YYYY-MM-DD) in the lot-local sense; no instant math
// happens here.
type Holiday struct {
	Date    string
	Country string
	Name    string
}
