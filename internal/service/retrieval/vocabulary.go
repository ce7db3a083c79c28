package retrieval

type category struct {
	name  string
	terms []string
}

// Order matters: excerpts are joined in the order categories and terms are
// listed here.
var categories = []category{
	{"fuel system", []string{"fuel", "gas", "tank", "consumption", "capacity", "gallons"}},
	{"engine", []string{"engine", "oil", "coolant", "overheat", "radiator", "belt", "idle"}},
	{"electrical", []string{"battery", "electrical", "wiring", "fuse", "alternator", "starter", "voltage", "headlight"}},
	{"brakes", []string{"brake", "pedal", "rotor", "caliper"}},
	{"drivetrain", []string{"transmission", "gear", "clutch", "axle", "differential"}},
	{"tires and wheels", []string{"tire", "wheel", "tread", "inflation", "pressure"}},
	{"hydraulics", []string{"hydraulic", "hose", "pump", "cylinder"}},
	{"firing", []string{"fire", "firing", "trigger", "hammer"}},
	{"feeding", []string{"feed", "magazine", "ammunition", "chamber", "extract", "eject"}},
	{"cleaning", []string{"clean", "lubricat", "corrosion", "bore", "barrel"}},
	{"optics", []string{"sight", "optic", "scope", "zero"}},
}

// Gate the issue-heading and troubleshooting fallbacks.
var problemIndicators = []string{
	"not working",
	"broken",
	"jammed",
	"jam",
	"won't start",
	"won’t start",
	"wont start",
	"leaking",
	"leak",
	"troubleshoot",
	"fix",
	"failure",
	"malfunction",
	"stuck",
}

// Searched in this priority order.
var troubleshootingMarkers = []string{
	"troubleshooting",
	"repair",
	"fault",
	"corrective action",
}

// Searched in this order after a troubleshooting marker.
var sectionMarkers = []string{"section", "chapter"}
