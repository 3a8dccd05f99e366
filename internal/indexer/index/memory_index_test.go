package index

import (
	"reflect"
	"testing"
)

func TestAddDocumentPositions(t *testing.T) {
	m := NewInvertedIndex()
	got := m.AddDocument("abc12345678", "Hello world. This is a test.", 3)
	want := WordPositions{
		"hello": {0},
		"world": {1},
		"this":  {2},
		"test":  {3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("positions = %v, want %v", got, want)
	}
}

func TestAddDocumentRepeatedWords(t *testing.T) {
	m := NewInvertedIndex()
	got := m.AddDocument("doc", "the cat and the dog and THE bird", 3)
	if want := []int{0, 3, 6}; !reflect.DeepEqual(got["the"], want) {
		t.Errorf("the = %v, want %v", got["the"], want)
	}
	if want := []int{2, 5}; !reflect.DeepEqual(got["and"], want) {
		t.Errorf("and = %v, want %v", got["and"], want)
	}
	rec := Record{WordPositions: got}
	if rec.Occurrences("the") != 3 {
		t.Errorf("Occurrences(the) = %d", rec.Occurrences("the"))
	}
}

func TestInvertedIndexIsUnionOfRecords(t *testing.T) {
	m := NewInvertedIndex()
	docs := map[string]string{
		"a": "apple banana cherry",
		"b": "banana date",
		"c": "cherry cherry apple",
	}
	records := make(map[string]WordPositions)
	for id, text := range docs {
		records[id] = m.AddDocument(id, text, 3)
	}
	materialized := m.Materialize()
	for word, ids := range materialized {
		var want []string
		for _, id := range []string{"a", "b", "c"} {
			if _, ok := records[id][word]; ok {
				want = append(want, id)
			}
		}
		if !reflect.DeepEqual(ids, want) {
			t.Errorf("word %q: ids = %v, want %v", word, ids, want)
		}
	}
	if m.UniqueWords() != 4 || len(materialized) != 4 {
		t.Errorf("unique words = %d, materialized = %d", m.UniqueWords(), len(materialized))
	}
	if !m.Contains("date", "b") || m.Contains("date", "a") {
		t.Error("Contains disagrees with the documents")
	}
	if got := m.Search("apple"); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Search(apple) = %v", got)
	}
	if got := m.Search("missing"); got != nil {
		t.Errorf("Search(missing) = %v", got)
	}
}

func TestMaterializeLeavesIndexUntouched(t *testing.T) {
	m := NewInvertedIndex()
	m.AddDocument("x", "alpha beta", 3)
	first := m.Materialize()
	first["alpha"] = append(first["alpha"], "bogus")
	if got := m.Search("alpha"); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("Search(alpha) = %v after mutating materialized copy", got)
	}
}
