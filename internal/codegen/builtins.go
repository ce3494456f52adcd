package codegen

// Fixed translation tables for builtin names. Specificity order when
// translating: exact literal > namespaced prefix > fallback identity.

// The hex palette behind color.X constants.
var colorPalette = map[string]string{
	"aqua":    "#00BCD4",
	"black":   "#363A45",
	"blue":    "#2196F3",
	"fuchsia": "#E040FB",
	"gray":    "#787B86",
	"green":   "#4CAF50",
	"lime":    "#00E676",
	"maroon":  "#880E4F",
	"navy":    "#311B92",
	"olive":   "#808000",
	"orange":  "#FF9800",
	"purple":  "#9C27B0",
	"red":     "#FF5252",
	"silver":  "#B2B5BE",
	"teal":    "#00897B",
	"white":   "#FFFFFF",
	"yellow":  "#FFEB3B",
}

// barstate.X under whole-history batch evaluation: every bar of the input is
// historical and confirmed, none is the realtime bar.
var barstateConstants = map[string]bool{
	"ishistory":   true,
	"isconfirmed": true,
	"isnew":       true,
	"isrealtime":  false,
	"isfirst":     false,
	"islast":      false,
}

// Runtime namespaces re-exported by the series runtime; referencing one adds
// it to the import set.
var runtimeNamespaces = map[string]bool{
	"ta":    true,
	"core":  true,
	"math":  true,
	"array": true,
}

// External-context namespaces passed through unchanged as accessors on the
// host context.
var contextNamespaces = map[string]bool{
	"syminfo":   true,
	"timeframe": true,
}

// Canonical OHLCV fields, always declared in the emitted prelude.
var ohlcvFields = []string{"open", "high", "low", "close", "volume"}

// Derived composite price fields, declared only when referenced.
var derivedFieldOrder = []string{"hl2", "hlc3", "ohlc4"}

// Calendar/time-component fields, declared only when referenced.
var calendarFieldOrder = []string{
	"time", "year", "month", "dayofmonth", "dayofweek", "hour", "minute", "second",
}

var derivedFields = map[string]bool{"hl2": true, "hlc3": true, "ohlc4": true}

var calendarFields = map[string]bool{
	"time": true, "year": true, "month": true, "dayofmonth": true,
	"dayofweek": true, "hour": true, "minute": true, "second": true,
}
