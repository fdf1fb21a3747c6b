package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Id       string
	Nickname Optional[string]
	Age      Optional[int]
}

type Audit struct {
	Editor Optional[string] `json:"editor"`
}

type tagged struct {
	Audit
	Code    Optional[int] `json:"code,omitempty"`
	Skip    Optional[int] `json:"-"`
	Parent  *profile
	History []profile
	Labels  map[string]Optional[string]
	Note    *string
	Raw     any
}

func TestOptionalEncoding(t *testing.T) {
	s := Default()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{
			name:  "absent field omitted",
			value: profile{Id: "p1", Nickname: Some("ada")},
			want:  `{"Id":"p1","Nickname":"ada"}`,
		},
		{
			name:  "all present",
			value: &profile{Id: "p1", Nickname: Some("ada"), Age: Some(36)},
			want:  `{"Id":"p1","Nickname":"ada","Age":36}`,
		},
		{
			name:  "present zero value kept",
			value: profile{Id: "p1", Age: Some(0)},
			want:  `{"Id":"p1","Age":0}`,
		},
		{
			name: "nested, embedded, tagged and map members",
			value: tagged{
				Code:    Some(7),
				Parent:  &profile{Id: "p0"},
				History: []profile{{Id: "h1", Age: Some(1)}},
				Labels:  map[string]Optional[string]{"a": Some("x"), "b": None[string]()},
			},
			want: `{"code":7,"Parent":{"Id":"p0"},"History":[{"Id":"h1","Age":1}],"Labels":{"a":"x"},"Note":null,"Raw":null}`,
		},
		{
			name:  "slice elements stay null",
			value: []Optional[int]{Some(1), None[int]()},
			want:  `[1,null]`,
		},
		{
			name:  "string containing null is untouched",
			value: profile{Id: "null,}", Nickname: Some(`"null"`)},
			want:  `{"Id":"null,}","Nickname":"\"null\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := s.Serialize(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestOptionalAbsentRoundTrip(t *testing.T) {
	s := Default()

	text, err := s.Serialize(profile{Id: "p1"})
	require.NoError(t, err)
	assert.Equal(t, `{"Id":"p1"}`, text)

	back, err := Deserialize[profile](s, text)
	require.NoError(t, err)
	assert.Equal(t, profile{Id: "p1"}, back)
}

func TestOptionalDecoding(t *testing.T) {
	s := Default()

	tests := []struct {
		name     string
		text     string
		nickname Optional[string]
		age      Optional[int]
	}{
		{name: "absent fields", text: `{"Id":"p1"}`, nickname: None[string](), age: None[int]()},
		{name: "explicit null", text: `{"Id":"p1","Nickname":null,"Age":null}`, nickname: None[string](), age: None[int]()},
		{name: "present", text: `{"Id":"p1","Nickname":"ada","Age":36}`, nickname: Some("ada"), age: Some(36)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Deserialize[profile](s, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.nickname, p.Nickname)
			assert.Equal(t, tt.age, p.Age)
		})
	}
}

func TestOptionalDecodingWrongType(t *testing.T) {
	_, err := Deserialize[profile](Default(), `{"Id":"p1","Age":"old"}`)
	assert.ErrorIs(t, err, ErrDeserialization)
}

func TestOptionalAccessors(t *testing.T) {
	some := Some(7)
	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.True(t, some.IsSome())
	assert.False(t, some.IsZero())
	assert.Equal(t, 7, some.OrElse(1))
	require.NotNil(t, some.Pointer())
	assert.Equal(t, 7, *some.Pointer())

	none := None[int]()
	_, ok = none.Get()
	assert.False(t, ok)
	assert.True(t, none.IsZero())
	assert.Equal(t, 1, none.OrElse(1))
	assert.Nil(t, none.Pointer())

	n := 3
	assert.Equal(t, Some(3), FromPointer(&n))
	assert.Equal(t, None[int](), FromPointer[int](nil))
}
