// Package domain models police incident report data and the views derived from it.
//
// # Data Source
//
// Incident reports come from the San Francisco Police Department (SFPD) incident
// export, a flat CSV with one row per reported incident. The columns this package
// relies on are:
//
//	Category   incident category, e.g. "LARCENY/THEFT"
//	Descript   free-text description, e.g. "GRAND THEFT FROM LOCKED AUTO"
//	DayOfWeek  full English weekday name, "Monday" .. "Sunday"
//	Date       MM/DD/YYYY
//	X          longitude as text, e.g. "-122.403404791479"
//	Y          latitude as text, e.g. "37.775420706711"
//
// Any other column is carried through parsing untouched.
//
// # Records
//
// A [Record] maps header names to raw text values. Rows are paired with the header
// positionally and pairing stops at the shorter of the two: a short row leaves its
// trailing keys absent, a long row has its extra values dropped. Consumers read
// fields through [Record.Get], which fails with [ErrMissingField] instead of
// returning an empty string for an absent key.
//
// # Coordinates
//
// The export uses "0" as the sentinel for an unknown coordinate. [ToFeatureCollection]
// skips any row whose X or Y is exactly the text "0", even though zero is a
// legitimate value on the equator or prime meridian. No numeric parsing happens
// here; coordinates stay as text until an encoder decides otherwise.
//
// # Feature IDs
//
// A [GeoFeature] ID is the row's zero-based position in the parsed Dataset, counted
// before filtering. Skipped rows leave gaps; IDs are never renumbered.
package domain
