package webevents

import (
	"testing"

	"github.com/matryer/is"
)

func TestThatPublishAcceptsJSONData(t *testing.T) {
	is := is.New(t)

	we := New()
	defer we.Shutdown()

	is.NoErr(we.Publish("reading", map[string]any{"device": "D", "key": "1"}))
	is.True(we.Handler() != nil)
}

func TestThatUnmarshalableDataIsRejected(t *testing.T) {
	is := is.New(t)

	we := New()
	defer we.Shutdown()

	err := we.Publish("reading", make(chan int))
	is.True(err != nil)
}
