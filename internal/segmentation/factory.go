package segmentation

import "github.com/Behyna/sms-services/smscampaign/internal/model"

// Chain is an ordered list of handlers applied left to right.
type Chain []Handler

// Handle runs every handler over the cleaned number and returns the emitted segments.
func (c Chain) Handle(cleaned string) ([]model.Segment, error) {
	state := State{Rest: cleaned}
	for _, handler := range c {
		next, err := handler(state)
		if err != nil {
			return nil, err
		}
		state = next
	}
	return state.Segments, nil
}

type HandlerFactory interface {
	NewChain() Chain
}

type handlerFactory struct {
	cfg       Config
	operators *OperatorTable
}

func NewHandlerFactory(cfg Config) HandlerFactory {
	cfg = cfg.withDefaults()
	return &handlerFactory{
		cfg:       cfg,
		operators: NewOperatorTable(cfg.Operators, cfg.FallbackOperatorName),
	}
}

func (f *handlerFactory) NewChain() Chain {
	return Chain{
		CountryCodeHandler(f.cfg.CountryCode, f.cfg.NationalNumberLength),
		OperatorCodeHandler(f.cfg.OperatorCodeLength),
		SubscriberNumberHandler(),
		OperatorNameHandler(f.operators),
	}
}
