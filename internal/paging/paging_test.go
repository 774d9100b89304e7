package paging

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want Params
	}{
		{Params{}, Params{Page: 1, PageSize: 10}},
		{Params{Page: -3, PageSize: -1}, Params{Page: 1, PageSize: 10}},
		{Params{Page: 4, PageSize: 25}, Params{Page: 4, PageSize: 25}},
		{Params{Page: 2, PageSize: 1000}, Params{Page: 2, PageSize: 100}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.in.Normalize())
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 50, Params{Page: 3, PageSize: 25}.Offset())
	assert.Equal(t, 0, Params{}.Offset())
	assert.Equal(t, 100, Params{PageSize: 100}.Limit())
}

func TestFromQuery(t *testing.T) {
	assert.Equal(t, Params{Page: 2, PageSize: 5}, FromQuery("2", "5"))
	assert.Equal(t, Params{Page: 1, PageSize: 10}, FromQuery("abc", ""))
}

func TestNewPageAndMap(t *testing.T) {
	p := NewPage[int](nil, Params{Page: 2}, 0)
	assert.NotNil(t, p.Items)
	assert.Equal(t, 10, p.PageSize)

	q := Map(NewPage([]int{1, 2}, Params{Page: 1, PageSize: 2}, 7), strconv.Itoa)
	assert.Equal(t, []string{"1", "2"}, q.Items)
	assert.Equal(t, 7, q.Total)
	assert.Equal(t, 2, q.PageSize)
}
