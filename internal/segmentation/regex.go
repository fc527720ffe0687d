package segmentation

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var ErrInvalidPattern = errors.New("INVALID_PATTERN")

// RegexTester answers whether subject matches pattern. Malformed patterns never match.
type RegexTester interface {
	Test(pattern, subject string) bool
}

type regexTester struct {
	cache  sync.Map
	logger *zap.Logger
}

func NewRegexTester(logger *zap.Logger) RegexTester {
	return &regexTester{logger: logger}
}

func (r *regexTester) Test(pattern, subject string) bool {
	if cached, ok := r.cache.Load(pattern); ok {
		if re, ok := cached.(*regexp.Regexp); ok {
			return re.MatchString(subject)
		}
		return false
	}

	re, err := CompilePattern(pattern)
	if err != nil {
		r.logger.Warn("Custom segment pattern does not compile",
			zap.String("pattern", pattern),
			zap.Error(err))
		r.cache.Store(pattern, err)
		return false
	}

	r.cache.Store(pattern, re)
	return re.MatchString(subject)
}

// CompilePattern compiles a custom segment pattern. Patterns may be written
// bare or wrapped in slash delimiters with trailing flags, e.g. /^\+22507/i.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, ErrInvalidPattern
	}

	expr := pattern
	if strings.HasPrefix(pattern, "/") {
		end := strings.LastIndex(pattern, "/")
		if end > 0 {
			body, flags := pattern[1:end], pattern[end+1:]
			prefix, ok := inlineFlags(flags)
			if ok {
				expr = prefix + body
			}
		}
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Join(ErrInvalidPattern, err)
	}
	return re, nil
}

func inlineFlags(flags string) (string, bool) {
	var inline strings.Builder
	for _, flag := range flags {
		switch flag {
		case 'i', 'm', 's':
			inline.WriteRune(flag)
		case 'u':
		default:
			return "", false
		}
	}
	if inline.Len() == 0 {
		return "", true
	}
	return "(?" + inline.String() + ")", true
}
