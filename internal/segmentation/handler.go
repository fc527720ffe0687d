package segmentation

import (
	"errors"
	"strings"

	"github.com/Behyna/sms-services/smscampaign/internal/model"
)

var ErrMalformedNumber = errors.New("MALFORMED_PHONE_NUMBER")

// State is the value threaded through the chain: the digits not consumed yet
// and the segments emitted so far.
type State struct {
	Rest     string
	Segments []model.Segment
}

// Handler consumes part of State.Rest and emits exactly one segment.
type Handler func(State) (State, error)

func (s State) emit(segmentType model.SegmentType, value, rest string) State {
	segments := make([]model.Segment, len(s.Segments), len(s.Segments)+1)
	copy(segments, s.Segments)
	segments = append(segments, model.Segment{SegmentType: segmentType, Value: value})
	return State{Rest: rest, Segments: segments}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CountryCodeHandler strips "+<cc>", "00<cc>" or nothing and emits the country code.
func CountryCodeHandler(countryCode string, nationalLength int) Handler {
	return func(s State) (State, error) {
		rest := s.Rest
		switch {
		case strings.HasPrefix(rest, "+"+countryCode):
			rest = strings.TrimPrefix(rest, "+"+countryCode)
		case strings.HasPrefix(rest, "00"+countryCode) && len(rest) == len(countryCode)+2+nationalLength:
			rest = strings.TrimPrefix(rest, "00"+countryCode)
		}

		if len(rest) != nationalLength || !isDigits(rest) {
			return s, ErrMalformedNumber
		}

		return s.emit(model.SegmentTypeCountryCode, countryCode, rest), nil
	}
}

func OperatorCodeHandler(length int) Handler {
	return func(s State) (State, error) {
		if len(s.Rest) < length {
			return s, ErrMalformedNumber
		}
		return s.emit(model.SegmentTypeOperatorCode, s.Rest[:length], s.Rest[length:]), nil
	}
}

func SubscriberNumberHandler() Handler {
	return func(s State) (State, error) {
		if s.Rest == "" {
			return s, ErrMalformedNumber
		}
		return s.emit(model.SegmentTypeSubscriberNumber, s.Rest, ""), nil
	}
}

func OperatorNameHandler(table *OperatorTable) Handler {
	return func(s State) (State, error) {
		for _, segment := range s.Segments {
			if segment.SegmentType == model.SegmentTypeOperatorCode {
				return s.emit(model.SegmentTypeOperatorName, table.Lookup(segment.Value), s.Rest), nil
			}
		}
		return s, ErrMalformedNumber
	}
}
