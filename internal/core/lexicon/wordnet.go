package lexicon

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mcq-service/internal/core/nlp"
)

const (
	hypernymPointer = "@"
	maxSynsetLine   = 1 << 20
)

// nounDetachments are WordNet's morphological rules for nouns, tried when a word
// has no exception entry.
var nounDetachments = []struct{ suffix, base string }{
	{"s", ""},
	{"ses", "s"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// WordNet answers noun lookups from a WordNet 3.0 database directory (the "dict"
// directory holding index.noun, data.noun and noun.exc). The index is loaded at
// open time; synset records are read from data.noun by byte offset on demand.
type WordNet struct {
	data       *os.File
	index      map[string][]int64
	exceptions map[string][]string
}

func OpenWordNet(dir string) (*WordNet, error) {
	index, err := readNounIndex(filepath.Join(dir, "index.noun"))
	if err != nil {
		return nil, err
	}
	exceptions, err := readExceptions(filepath.Join(dir, "noun.exc"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	data, err := os.Open(filepath.Join(dir, "data.noun"))
	if err != nil {
		return nil, fmt.Errorf("open wordnet data: %w", err)
	}
	return &WordNet{data: data, index: index, exceptions: exceptions}, nil
}

func (w *WordNet) Close() error { return w.data.Close() }

// Len is the number of noun lemmas in the index.
func (w *WordNet) Len() int { return len(w.index) }

// LookupNoun returns one sense per noun synset of word, in WordNet sense order.
// Inflected forms are reduced to their base forms first.
func (w *WordNet) LookupNoun(ctx context.Context, word string) ([]nlp.Sense, error) {
	var senses []nlp.Sense
	seen := map[int64]bool{}
	for _, form := range w.baseForms(word) {
		for _, off := range w.index[form] {
			if seen[off] {
				continue
			}
			seen[off] = true
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			syn, err := w.synset(off)
			if err != nil {
				return nil, err
			}
			sense := nlp.Sense{Synonyms: syn.words}
			for _, h := range syn.hypernyms {
				hs, err := w.synset(h)
				if err != nil {
					return nil, err
				}
				sense.Hypernyms = append(sense.Hypernyms, hs.words...)
			}
			senses = append(senses, sense)
		}
	}
	return senses, nil
}

// baseForms lists the indexed lemmas word may be an inflection of, word itself first.
func (w *WordNet) baseForms(word string) []string {
	word = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), " ", "_")
	if word == "" {
		return nil
	}
	candidates := []string{word}
	if exc, ok := w.exceptions[word]; ok {
		candidates = append(candidates, exc...)
	} else {
		for _, d := range nounDetachments {
			if strings.HasSuffix(word, d.suffix) {
				candidates = append(candidates, strings.TrimSuffix(word, d.suffix)+d.base)
			}
		}
	}

	var forms []string
	seen := map[string]bool{}
	for _, c := range candidates {
		if _, ok := w.index[c]; ok && !seen[c] {
			seen[c] = true
			forms = append(forms, c)
		}
	}
	return forms
}

type synsetRecord struct {
	words     []string
	hypernyms []int64
}

// synset parses the data.noun line at off:
//
//	offset lex_filenum ss_type w_cnt (word lex_id)... p_cnt (symbol offset pos src/tgt)... | gloss
func (w *WordNet) synset(off int64) (synsetRecord, error) {
	line, err := bufio.NewReader(io.NewSectionReader(w.data, off, maxSynsetLine)).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return synsetRecord{}, fmt.Errorf("read synset %08d: %w", off, err)
	}
	if i := strings.Index(line, " | "); i >= 0 {
		line = line[:i]
	}
	f := strings.Fields(line)
	bad := fmt.Errorf("malformed synset at %08d", off)
	if len(f) < 4 {
		return synsetRecord{}, bad
	}
	if got, err := strconv.ParseInt(f[0], 10, 64); err != nil || got != off {
		return synsetRecord{}, bad
	}
	wcnt, err := strconv.ParseInt(f[3], 16, 32)
	if err != nil || len(f) < 5+2*int(wcnt) {
		return synsetRecord{}, bad
	}
	rec := synsetRecord{words: make([]string, 0, wcnt)}
	for i := 0; i < int(wcnt); i++ {
		rec.words = append(rec.words, f[4+2*i])
	}

	pi := 4 + 2*int(wcnt)
	pcnt, err := strconv.Atoi(f[pi])
	if err != nil || len(f) < pi+1+4*pcnt {
		return synsetRecord{}, bad
	}
	for j := 0; j < pcnt; j++ {
		p := f[pi+1+4*j : pi+5+4*j]
		if p[0] != hypernymPointer || p[2] != "n" {
			continue
		}
		target, err := strconv.ParseInt(p[1], 10, 64)
		if err != nil {
			return synsetRecord{}, bad
		}
		rec.hypernyms = append(rec.hypernyms, target)
	}
	return rec, nil
}

// readNounIndex maps each lemma to its synset offsets:
//
//	lemma pos synset_cnt p_cnt ptr_symbol... sense_cnt tagsense_cnt synset_offset...
func readNounIndex(path string) (map[string][]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordnet index: %w", err)
	}
	defer f.Close()

	index := make(map[string][]int64, 1<<16)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxSynsetLine)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if line == "" || line[0] == ' ' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			return nil, fmt.Errorf("%s:%d: too few fields", path, n)
		}
		cnt, err1 := strconv.Atoi(fields[2])
		pcnt, err2 := strconv.Atoi(fields[3])
		start := 4 + pcnt + 2
		if err1 != nil || err2 != nil || len(fields) < start+cnt {
			return nil, fmt.Errorf("%s:%d: malformed entry", path, n)
		}
		offsets := make([]int64, 0, cnt)
		for _, s := range fields[start : start+cnt] {
			off, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad offset %q", path, n, s)
			}
			offsets = append(offsets, off)
		}
		index[fields[0]] = offsets
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return index, nil
}

// readExceptions parses noun.exc lines of the form "inflected base...".
func readExceptions(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	exc := map[string][]string{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 {
			exc[fields[0]] = append(exc[fields[0]], fields[1:]...)
		}
	}
	return exc, sc.Err()
}
