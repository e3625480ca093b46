package value_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"nft_portal/internal/domain/value"
)

func TestItemPropertiesString(t *testing.T) {
	rq := require.New(t)

	props := value.ItemProperties{
		"name":  "Delta Wing",
		"empty": "",
		"num":   float64(7),
	}

	rq.Equal("Delta Wing", props.String("name", "fallback"))
	rq.Equal("fallback", props.String("empty", "fallback"))
	rq.Equal("fallback", props.String("num", "fallback"))
	rq.Equal("fallback", props.String("missing", "fallback"))

	var nilProps value.ItemProperties
	rq.Equal("fallback", nilProps.String("name", "fallback"))
}

func TestItemPropertiesBool(t *testing.T) {
	rq := require.New(t)

	props := value.ItemProperties{
		"b":       true,
		"s_true":  "true",
		"s_false": "false",
		"junk":    "yep",
		"num":     float64(1),
	}

	rq.True(props.Bool("b"))
	rq.True(props.Bool("s_true"))
	rq.False(props.Bool("s_false"))
	rq.False(props.Bool("junk"))
	rq.False(props.Bool("num"))
	rq.False(props.Bool("missing"))
}

func TestItemPropertiesInt(t *testing.T) {
	rq := require.New(t)

	props := value.ItemProperties{
		"f":    float64(42),
		"jn":   json.Number("17"),
		"s":    "99",
		"junk": "not-a-number",
		"b":    true,
	}

	n := props.Int("f")
	rq.NotNil(n)
	rq.Equal(42, *n)

	n = props.Int("jn")
	rq.NotNil(n)
	rq.Equal(17, *n)

	n = props.Int("s")
	rq.NotNil(n)
	rq.Equal(99, *n)

	rq.Nil(props.Int("junk"))
	rq.Nil(props.Int("b"))
	rq.Nil(props.Int("missing"))
}
