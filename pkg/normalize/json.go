/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: json.go
Description: JSON normalizer for line-delimited JSON. Flattens each document into
dotted and indexed paths up to a configured object depth and emits the JSON text of
every scalar leaf. String leaves are re-encoded so escaped and literal spellings of
the same value mask alike.
*/

package normalize

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/kleascm/bytefreq/pkg/mask"
	"github.com/kleascm/bytefreq/pkg/registry"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// DefaultPathDepth bounds object nesting unless configured otherwise
const DefaultPathDepth = 2

// MaxNesting bounds total container nesting, arrays included. Anything
// nested deeper is dropped regardless of PathDepth.
const MaxNesting = 64

// JSONOptions configures a JSON normalizer
type JSONOptions struct {
	Grain              mask.Grain
	PathDepth          int
	RemoveArrayNumbers bool
	Logger             logrus.FieldLogger
	Events             Events
}

// JSON normalizes one JSON document per line
type JSON struct {
	grain              mask.Grain
	maxDepth           int
	removeArrayNumbers bool
	registry           *registry.Registry
	sink               Sink
	logger             logrus.FieldLogger
	events             Events
	stats              Stats
	buf                bytes.Buffer
}

// NewJSON creates a JSON normalizer writing into reg and sink
func NewJSON(reg *registry.Registry, sink Sink, opts JSONOptions) *JSON {
	if opts.PathDepth < 0 {
		opts.PathDepth = DefaultPathDepth
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	if opts.Events == nil {
		opts.Events = nopEvents{}
	}
	return &JSON{
		grain:              opts.Grain,
		maxDepth:           opts.PathDepth,
		removeArrayNumbers: opts.RemoveArrayNumbers,
		registry:           reg,
		sink:               sink,
		logger:             opts.Logger,
		events:             opts.Events,
	}
}

// ProcessLine parses line as a JSON document and emits its leaves.
// Lines that are not valid JSON are skipped.
func (j *JSON) ProcessLine(line string) {
	if line == "" {
		return
	}
	j.stats.Lines++

	doc := strings.TrimSpace(line)
	if doc == "" || !gjson.Valid(doc) {
		j.stats.SkippedLines++
		j.logger.WithField("line", j.stats.Lines).Trace("Skipped line that is not valid JSON")
		j.events.OnSkippedLine(j.stats.Lines, "invalid json")
		return
	}

	j.walk(gjson.Parse(doc), "", 0, 0)
}

// walk descends into value. Only object nesting consumes depth; every
// container counts towards MaxNesting.
func (j *JSON) walk(value gjson.Result, prefix string, depth, nesting int) {
	switch {
	case value.IsObject():
		if depth >= j.maxDepth || nesting >= MaxNesting {
			return
		}
		keys, members := lastMembers(value)
		for _, key := range keys {
			j.walk(members[key], joinKey(prefix, key), depth+1, nesting+1)
		}

	case value.IsArray():
		if nesting >= MaxNesting {
			j.logger.WithField("path", prefix).Trace("Dropped array nested too deeply")
			return
		}
		idx := 0
		value.ForEach(func(_, child gjson.Result) bool {
			j.walk(child, j.indexKey(prefix, idx), depth, nesting+1)
			idx++
			return true
		})

	case value.Type == gjson.String:
		j.emit(prefix, j.encodeString(value.String()))

	default:
		j.emit(prefix, value.Raw)
	}
}

// lastMembers returns object keys in first-seen order, each bound to the
// last value given for it.
func lastMembers(value gjson.Result) ([]string, map[string]gjson.Result) {
	var keys []string
	members := make(map[string]gjson.Result)
	value.ForEach(func(key, child gjson.Result) bool {
		k := key.String()
		if _, seen := members[k]; !seen {
			keys = append(keys, k)
		}
		members[k] = child
		return true
	})
	return keys, members
}

// encodeString renders s as a JSON string literal without HTML escaping
func (j *JSON) encodeString(s string) string {
	j.buf.Reset()
	enc := json.NewEncoder(&j.buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(j.buf.String(), "\n")
}

func (j *JSON) emit(path, raw string) {
	idx, created := j.registry.GetOrCreate(path)
	if created {
		j.sink.Ensure(idx)
	}
	j.sink.Observe(idx, raw, j.grain)
	j.stats.Observations++
}

func (j *JSON) indexKey(prefix string, idx int) string {
	if j.removeArrayNumbers {
		return prefix + "[]"
	}
	return prefix + "[" + strconv.Itoa(idx) + "]"
}

// Stats returns the normalizer counters
func (j *JSON) Stats() Stats {
	return j.stats
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
