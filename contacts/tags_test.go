package contacts

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseTags(t *testing.T) {
	be.Equal(t, ParseTags("vip, lead ,, kunde"), []string{"vip", "lead", "kunde"})
	be.Equal(t, ParseTags("a,a"), []string{"a", "a"})
	be.Equal(t, ParseTags(""), []string{})
	be.Equal(t, ParseTags(" , "), []string{})
}

func TestFormatTags(t *testing.T) {
	be.Equal(t, FormatTags([]string{"vip", "lead"}), "vip, lead")
	be.Equal(t, FormatTags(nil), "")
	be.Equal(t, ParseTags(FormatTags([]string{"b", "a"})), []string{"b", "a"})
}

func TestDistinctTags(t *testing.T) {
	got := DistinctTags([]Contact{
		{Tags: []string{"b", "a"}},
		{Tags: []string{"a", "c"}},
		{},
	})
	be.Equal(t, got, []string{"a", "b", "c"})
	be.Equal(t, DistinctTags(nil), []string{})
}
