// Package types defines the public shared types of fitskit: the typed
// error with stable kinds, the closed CardType enumeration, and small
// markers used by the card constructors. Keeping these in a leaf package
// lets both the core and external consumers depend on them without
// importing the implementation.
package types
