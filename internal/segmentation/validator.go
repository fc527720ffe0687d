package segmentation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var ErrInvalidPhoneNumber = errors.New("INVALID_PHONE_NUMBER")

var separators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "", "\t", "")

// Validator gates raw input before it reaches the handler chain.
type Validator interface {
	IsValid(raw string) bool
	Normalize(raw string) (string, error)
	Clean(raw string) string
}

type phoneValidator struct {
	cfg         Config
	countryCode int
	pattern     *regexp.Regexp
}

func NewValidator(cfg Config) Validator {
	cfg = cfg.withDefaults()
	countryCode, _ := strconv.Atoi(cfg.CountryCode)

	cc := regexp.QuoteMeta(cfg.CountryCode)
	pattern := regexp.MustCompile(fmt.Sprintf(`^(?:\+%s|00%s)?(\d{%d})$`, cc, cc, cfg.NationalNumberLength))

	return &phoneValidator{cfg: cfg, countryCode: countryCode, pattern: pattern}
}

// Clean strips the visual separators people type between digit groups.
func (v *phoneValidator) Clean(raw string) string {
	return separators.Replace(strings.TrimSpace(raw))
}

func (v *phoneValidator) IsValid(raw string) bool {
	_, err := v.Normalize(raw)
	return err == nil
}

// Normalize returns the canonical +<country><national> form shared by the
// international, 00-prefixed and bare local spellings of a number. The number
// must also be a valid allocation for the configured region.
func (v *phoneValidator) Normalize(raw string) (string, error) {
	cleaned := v.Clean(raw)
	if cleaned == "" {
		return "", ErrInvalidPhoneNumber
	}

	match := v.pattern.FindStringSubmatch(cleaned)
	if match == nil {
		return "", ErrInvalidPhoneNumber
	}

	canonical := "+" + v.cfg.CountryCode + match[1]

	num, err := phonenumbers.Parse(canonical, v.cfg.Region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhoneNumber, err)
	}
	if int(num.GetCountryCode()) != v.countryCode || !phonenumbers.IsValidNumberForRegion(num, v.cfg.Region) {
		return "", ErrInvalidPhoneNumber
	}

	return canonical, nil
}
