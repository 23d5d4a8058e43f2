// README: Opaque entity identifier shared across modules.
package types

type ID string
