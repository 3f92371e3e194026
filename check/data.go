package check

import (
	"bytes"
	"fmt"
	"math"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/ascent/internal"
)

// ExtraString formats extra data as "[key=value key=value]". A nil map formats as "[]".
func ExtraString(data *orderedmap.OrderedMap[string, any]) string {
	if data == nil {
		return "[]"
	}
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	buf.WriteByte('[')
	for el := data.Front(); el != nil; el = el.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%s=%v", el.Key, el.Value)
	}
	buf.WriteByte(']')
	return buf.String()
}

// Round64 rounds v to the amount of decimals passed.
func Round64(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
