package segmentation

type Config struct {
	CountryCode          string         `mapstructure:"country_code"`
	Region               string         `mapstructure:"region"`
	NationalNumberLength int            `mapstructure:"national_number_length"`
	OperatorCodeLength   int            `mapstructure:"operator_code_length"`
	FallbackOperatorName string         `mapstructure:"fallback_operator_name"`
	Operators            []OperatorRule `mapstructure:"operators"`
}

const (
	defaultCountryCode          = "225"
	defaultRegion               = "CI"
	defaultNationalNumberLength = 10
	defaultOperatorCodeLength   = 2
	defaultFallbackOperatorName = "Inconnu"
)

// DefaultOperatorRules is used when no operator rules are configured.
var DefaultOperatorRules = []OperatorRule{
	{Prefixes: []string{"05", "07"}, Name: "MTN CI"},
	{Prefixes: []string{"01"}, Name: "Orange CI"},
	{Prefixes: []string{"09"}, Name: "Moov Africa"},
}

func (c Config) withDefaults() Config {
	if c.CountryCode == "" {
		c.CountryCode = defaultCountryCode
	}
	if c.Region == "" {
		c.Region = defaultRegion
	}
	if c.NationalNumberLength <= 0 {
		c.NationalNumberLength = defaultNationalNumberLength
	}
	if c.OperatorCodeLength <= 0 {
		c.OperatorCodeLength = defaultOperatorCodeLength
	}
	if c.FallbackOperatorName == "" {
		c.FallbackOperatorName = defaultFallbackOperatorName
	}
	if len(c.Operators) == 0 {
		c.Operators = DefaultOperatorRules
	}
	return c
}
