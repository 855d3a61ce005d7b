// Package domain holds the types shared by the panel renderer and the
// contracts of its external collaborators.
//
// # Collaborators
//
// Page loading and screenshots are done by a remote browser-automation
// service ([TileFetcher], [ForecastSource]); icons are downloaded over HTTP
// ([IconFetcher]). All of them are blocking calls bounded by a timeout at the
// call site. A timeout surfaces as [ErrFetchTimeout], any other failure as
// [ErrFetch]. Nothing is retried inside a render pass.
//
// # Forecast Table Conventions
//
// The weekly forecast table has one column per day and four rows:
//
//	row 1: date          "10月18日(土)"   month and day, weekday in parentheses
//	row 2: weather icon  <img alt="晴れ" src=".../size90/...">
//	row 3: temperature   "25\n15"         high, then low, in °C
//	row 4: precipitation "30"             percent
//
// The year is not shown. [ParseForecastColumn] takes it from the current
// time in JST and rolls over to the next year for dates that would otherwise
// lie more than six months in the past (a late-December table read in early
// January is not a realistic case, the reverse is).
//
// The icon URL in the table points at the 90px rendition; the 150px one is
// requested instead because it survives upscaling and quantization better.
package domain
