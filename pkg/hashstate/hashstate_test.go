package hashstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Fragment
	}{
		{"", Fragment{"all", "*"}},
		{"#", Fragment{"all", "*"}},
		{"#tab=meteor&filter=*", Fragment{"meteor", "*"}},
		{"tab=meteor&filter=*", Fragment{"meteor", "*"}},
		{"#tab=rare&filter=3", Fragment{"rare", "3"}},
		{"#tab=rare", Fragment{"rare", "*"}},
		{"#filter=4", Fragment{"all", "4"}},
		{"#tab=&filter=", Fragment{"all", "*"}},
		{"#tab=bogus&filter=5", Fragment{"bogus", "5"}},
		{"#x=1&tab=hq&y=2", Fragment{"hq", "*"}},
		{"#tab=rare&filter=%2A", Fragment{"rare", "*"}},
		{"#tab=a%20b&filter=x+y", Fragment{"a b", "x y"}},
		{"#tab=rare&tab=all", Fragment{"rare", "*"}},
		{"#tab=%zz&filter=2", Fragment{"%zz", "2"}},
		{"#tab=rare&filter=5%", Fragment{"rare", "5%"}},
		{"#tab=rare&filter=5;x", Fragment{"rare", "5;x"}},
		{"#tab=rare&filter=%zz", Fragment{"rare", "%zz"}},
		{"#tab=rare&filter=a+b%", Fragment{"rare", "a b%"}},
		{"#tab=rare&filter=1=2", Fragment{"rare", "1=2"}},
		{"#tab&filter=3", Fragment{"all", "3"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.in), "in=%q", tt.in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "#tab=meteor&filter=*", Format(Fragment{"meteor", "*"}))
	assert.Equal(t, "#tab=rare&filter=5", Format(Fragment{"rare", "5"}))
	assert.Equal(t, "#tab=a%20b&filter=%26%3D", Format(Fragment{"a b", "&="}))
	assert.Equal(t, "#tab=%E3%83%AC%E3%82%A2&filter=*", Format(Fragment{"レア", "*"}))
}

func TestEscapeComponentMatchesBrowser(t *testing.T) {
	assert.Equal(t, "-_.!~*'()", EscapeComponent("-_.!~*'()"))
	assert.Equal(t, "%2B%2C%2F%3F%23", EscapeComponent("+,/?#"))
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Fragment{
		{"meteor", "*"},
		{"rare", "3"},
		{"a b&c", "*()"},
		{"レア", "★"},
	} {
		assert.Equal(t, f, Parse(Format(f)))
	}
	assert.Equal(t, "#tab=meteor&filter=*", Format(Parse("#tab=meteor&filter=*")))
}

func TestSynchronizerWrite(t *testing.T) {
	loc := NewMemoryLocation("")
	s := NewSynchronizer(loc)
	assert.True(t, s.Empty())
	assert.Equal(t, Fragment{"all", "*"}, s.Read())

	assert.True(t, s.Write(Fragment{"all", "*"}, true))
	assert.Equal(t, 1, loc.Len(), "replace must not add history")
	assert.Equal(t, 1, loc.Replaces())
	assert.False(t, s.Empty())

	assert.True(t, s.Write(Fragment{"rare", "*"}, false))
	assert.True(t, s.Write(Fragment{"rare", "5"}, false))
	assert.Equal(t, 3, loc.Len())
	assert.Equal(t, 2, loc.Pushes())

	assert.False(t, s.Write(Fragment{"rare", "5"}, false), "same fragment is not written")
	assert.Equal(t, 2, loc.Pushes())

	assert.True(t, loc.Back())
	assert.Equal(t, Fragment{"rare", "*"}, s.Read())
	assert.True(t, loc.Back())
	assert.False(t, loc.Back())
	assert.Equal(t, Fragment{"all", "*"}, s.Read())

	// Pushing after going back drops the forward entries.
	s.Write(Fragment{"hq", "*"}, false)
	assert.False(t, loc.Forward())
	assert.Equal(t, 2, loc.Len())
}
