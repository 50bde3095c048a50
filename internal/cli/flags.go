package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName               = "bool"
	booleanFlagTrueLiteral            = "true"
	booleanFlagAcceptedValuesListing  = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueErrorLabel = "invalid boolean value"

	strictFlagName         = "strict"
	strictFlagDescription  = "abort on the first file that cannot be read or written"
	verboseFlagName        = "verbose"
	verboseFlagShorthand   = "v"
	verboseFlagDescription = "enable debug logging"
	versionFlagName        = "version"
	versionFlagDescription = "display application version"
	versionTemplate        = "%s version: %s\n"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// booleanFlagValue accepts yes/no style literals in addition to the values
// understood by strconv.ParseBool. A bare flag sets true.
type booleanFlagValue struct {
	target  *bool
	flagKey string
}

func (value *booleanFlagValue) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, ok := booleanFlagLiterals[normalized]
	if !ok {
		return fmt.Errorf("%s %q for --%s; accepted values: %s", booleanFlagInvalidValueErrorLabel, input, value.flagKey, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = false
	flagSet.VarP(&booleanFlagValue{target: target, flagKey: name}, name, shorthand, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(false)
		lookup.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// sharedOptions holds the flags both commands understand.
type sharedOptions struct {
	strict      bool
	verbose     bool
	showVersion bool
}

func registerSharedFlags(flagSet *pflag.FlagSet, options *sharedOptions) {
	registerBooleanFlag(flagSet, &options.strict, strictFlagName, "", strictFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, verboseFlagShorthand, verboseFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)
}
