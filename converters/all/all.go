package all

import (
	// Import all the converters so they register themselves
	_ "github.com/darianmavgo/mkfixture/converters/csv"
	_ "github.com/darianmavgo/mkfixture/converters/excel"
	_ "github.com/darianmavgo/mkfixture/converters/html"
	_ "github.com/darianmavgo/mkfixture/converters/markdown"
)
