// Package domain models anglers, lakes, fish species, lures and the catches
// that tie them together, plus the pure rules that turn a raw catch
// submission into an enriched, persisted catch.
//
// # Weather Conventions
//
// Weather arrives from the provider in imperial units except pressure, which
// is reported in hectopascals.
//
// Pressure:
//
//	inHg = round(hPa * 0.02952998057228486, 2)
//	1013.25 hPa → 29.92 inHg
//
// Wind direction is reduced to a cardinal bucket from the meteorological
// heading in degrees, normalised into [0, 360) first. The bands are uneven:
//
//	d < 27          N
//	27 ≤ d < 135    E
//	135 ≤ d < 230   S
//	230 ≤ d < 315   W
//	d ≥ 315         N
//
// Barometric bands used by reports (boundaries are inclusive as listed; a
// reading of 30.41 to 30.49 falls through to Low):
//
//	p ≥ 30.50               High ( >30.5 )
//	29.70 ≤ p ≤ 30.40       Medium ( 29.7 - 30.4 )
//	otherwise               Low ( <29.6 )
//
// # Catch Timestamps
//
// Anglers enter a calendar date ("2006-01-02") and a time of day ("15:04" or
// "15:04:05") without a zone. The pair is interpreted in the configured catch
// location with no conversion, then reduced to unix seconds for the
// point-in-time weather lookup. See [NormalizeTimestamp].
//
// # Master Angler
//
// A catch qualifies when a length was recorded and it is at least the
// species threshold. The flag is fixed when the catch is recorded and is
// never recomputed on edit. See [QualifiesMasterAngler].
package domain
