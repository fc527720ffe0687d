package segmentation_test

import (
	"testing"

	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Handle(t *testing.T) {
	factory := segmentation.NewHandlerFactory(segmentation.Config{})

	t.Run("emits four segments in fixed order for every supported prefix", func(t *testing.T) {
		for _, input := range []string{"+2250701020304", "002250701020304", "0701020304"} {
			segments, err := factory.NewChain().Handle(input)
			require.NoError(t, err, input)
			require.Len(t, segments, 4, input)

			assert.Equal(t, model.SegmentTypeCountryCode, segments[0].SegmentType)
			assert.Equal(t, "225", segments[0].Value)
			assert.Equal(t, model.SegmentTypeOperatorCode, segments[1].SegmentType)
			assert.Equal(t, "07", segments[1].Value)
			assert.Equal(t, model.SegmentTypeSubscriberNumber, segments[2].SegmentType)
			assert.Equal(t, "01020304", segments[2].Value)
			assert.Equal(t, model.SegmentTypeOperatorName, segments[3].SegmentType)
			assert.Equal(t, "MTN CI", segments[3].Value)
		}
	})

	t.Run("maps operator codes through the default table", func(t *testing.T) {
		cases := map[string]string{
			"+2250701020304": "MTN CI",
			"+2250501020304": "MTN CI",
			"+2250101010101": "Orange CI",
			"+2250901020304": "Moov Africa",
			"+2252721000000": "Inconnu",
		}

		for input, operator := range cases {
			segments, err := factory.NewChain().Handle(input)
			require.NoError(t, err, input)
			assert.Equal(t, operator, segments[3].Value, input)
		}
	})

	t.Run("uses configured operator rules", func(t *testing.T) {
		custom := segmentation.NewHandlerFactory(segmentation.Config{
			FallbackOperatorName: "Other",
			Operators: []segmentation.OperatorRule{
				{Prefixes: []string{"07"}, Name: "Orange CI"},
			},
		})

		segments, err := custom.NewChain().Handle("0701020304")
		require.NoError(t, err)
		assert.Equal(t, "Orange CI", segments[3].Value)

		segments, err = custom.NewChain().Handle("0101020304")
		require.NoError(t, err)
		assert.Equal(t, "Other", segments[3].Value)
	})

	t.Run("fails on malformed input", func(t *testing.T) {
		_, err := factory.NewChain().Handle("+22507")
		assert.ErrorIs(t, err, segmentation.ErrMalformedNumber)
	})

	t.Run("chains are independent between calls", func(t *testing.T) {
		first, err := factory.NewChain().Handle("0701020304")
		require.NoError(t, err)
		second, err := factory.NewChain().Handle("0901020304")
		require.NoError(t, err)

		assert.Len(t, first, 4)
		assert.Len(t, second, 4)
		assert.Equal(t, "MTN CI", first[3].Value)
		assert.Equal(t, "Moov Africa", second[3].Value)
	})
}

func TestHandlers_ArePure(t *testing.T) {
	input := segmentation.State{Rest: "0701020304"}

	out, err := segmentation.OperatorCodeHandler(2)(input)
	require.NoError(t, err)

	assert.Equal(t, "0701020304", input.Rest)
	assert.Empty(t, input.Segments)
	assert.Equal(t, "01020304", out.Rest)
	assert.Len(t, out.Segments, 1)
}

func TestOperatorTable_Lookup(t *testing.T) {
	table := segmentation.NewOperatorTable([]segmentation.OperatorRule{
		{Prefixes: []string{"0"}, Name: "First"},
		{Prefixes: []string{"07"}, Name: "Second"},
	}, "Unknown")

	assert.Equal(t, "First", table.Lookup("07"))
	assert.Equal(t, "Unknown", table.Lookup("27"))
}
