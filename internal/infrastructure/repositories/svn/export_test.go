package svn

// ParseLastChangedRev exports parseLastChangedRev for testing.
var ParseLastChangedRev = parseLastChangedRev //nolint:gochecknoglobals // test export

// ParseListing exports parseListing for testing.
var ParseListing = parseListing //nolint:gochecknoglobals // test export
