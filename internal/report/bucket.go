// Package report holds the pure aggregation primitives shared by every
// report: month-keyed buckets with zero-fill and merge, the rate formulas,
// period-over-period comparison and stable top-N ranking. The store layer
// produces grouped rows; this package shapes them.
package report

// MonthKey identifies a month bucket within a report range.
type MonthKey struct {
	Year  int
	Month int // 1-12
}

// PeriodBuckets is a month-keyed aggregation structure. Every month of the
// range exists from construction, so charts and exports always see a
// contiguous, fully shaped series even when no source contributed a row.
type PeriodBuckets[T any] struct {
	keys    []MonthKey
	buckets map[MonthKey]*T
}

// NewYearBuckets builds the 12 zero-valued buckets of a calendar year.
func NewYearBuckets[T any](year int) *PeriodBuckets[T] {
	pb := &PeriodBuckets[T]{buckets: make(map[MonthKey]*T, 12)}
	for m := 1; m <= 12; m++ {
		k := MonthKey{Year: year, Month: m}
		pb.keys = append(pb.keys, k)
		pb.buckets[k] = new(T)
	}
	return pb
}

// NewMonthBuckets builds buckets for an explicit month range, inclusive.
func NewMonthBuckets[T any](from, to MonthKey) *PeriodBuckets[T] {
	pb := &PeriodBuckets[T]{buckets: make(map[MonthKey]*T)}
	for k := from; !k.After(to); k = k.Next() {
		pb.keys = append(pb.keys, k)
		pb.buckets[k] = new(T)
	}
	return pb
}

func (k MonthKey) Next() MonthKey {
	if k.Month == 12 {
		return MonthKey{Year: k.Year + 1, Month: 1}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

func (k MonthKey) After(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year > other.Year
	}
	return k.Month > other.Month
}

// Merge applies fn to the bucket for key. Rows outside the range are
// dropped rather than growing the range; the report shape is fixed by the
// filter, not by the data.
func (pb *PeriodBuckets[T]) Merge(key MonthKey, fn func(*T)) {
	b, ok := pb.buckets[key]
	if !ok {
		return
	}
	fn(b)
}

// Keys returns the bucket keys in chronological order.
func (pb *PeriodBuckets[T]) Keys() []MonthKey {
	return pb.keys
}

// Get returns the bucket for key, or nil when key is outside the range.
func (pb *PeriodBuckets[T]) Get(key MonthKey) *T {
	return pb.buckets[key]
}

// Collect maps every bucket in chronological order.
func Collect[T, R any](pb *PeriodBuckets[T], fn func(MonthKey, *T) R) []R {
	out := make([]R, 0, len(pb.keys))
	for _, k := range pb.keys {
		out = append(out, fn(k, pb.buckets[k]))
	}
	return out
}
