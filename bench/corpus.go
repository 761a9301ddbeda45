// Package bench exercises both wire formats concurrently over a generated
// corpus of records, verifying that every round trip matches and that
// distinct buffers require no coordination (spec §5).
package bench

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/wiretag/wiretag/encfmt"
	"github.com/wiretag/wiretag/fingerprint"
	"github.com/wiretag/wiretag/packfmt"
	"github.com/wiretag/wiretag/wire"
)

// record is the corpus runner's own fixture type. It is not part of either
// wire format; it exists only to give RunCorpus something realistic to
// encode, mixing a scalar, a string, a float, and a list the way a generated
// struct codec would.
type record struct {
	ID    uint64
	Name  string
	Score float64
	Tags  []string
}

var recordMembers = []fingerprint.Member{
	{Name: "id", TypeName: "u64"},
	{Name: "name", TypeName: "string"},
	{Name: "score", TypeName: "f64"},
	{Name: "tags", TypeName: "list<string>"},
}

var recordFingerprint = fingerprint.Fingerprint("Record", fingerprint.KindStruct, fingerprint.ShapeNamed, recordMembers)

var recordMemberIDs = [4]uint64{
	fingerprint.MemberID("id"),
	fingerprint.MemberID("name"),
	fingerprint.MemberID("score"),
	fingerprint.MemberID("tags"),
}

func randomRecord(rng *rand.Rand, seed int) record {
	tags := make([]string, rng.Intn(4))
	for i := range tags {
		tags[i] = fmt.Sprintf("tag-%d-%d", seed, i)
	}
	return record{
		ID:    rng.Uint64(),
		Name:  fmt.Sprintf("record-%d", seed),
		Score: rng.Float64()*200 - 100,
		Tags:  tags,
	}
}

func encodeRecordNamed(w wire.Writer, rec record) error {
	return encfmt.EncodeNamedStruct(w, func(mw *encfmt.MemberWriter) error {
		if err := mw.WriteMember(recordMemberIDs[0], func(w wire.Writer) { wire.EncodeUint64(w, rec.ID) }); err != nil {
			return err
		}
		if err := mw.WriteMember(recordMemberIDs[1], func(w wire.Writer) { wire.EncodeString(w, rec.Name) }); err != nil {
			return err
		}
		if err := mw.WriteMember(recordMemberIDs[2], func(w wire.Writer) { wire.EncodeF64(w, rec.Score) }); err != nil {
			return err
		}
		return mw.WriteMember(recordMemberIDs[3], func(w wire.Writer) { encodeStringList(w, rec.Tags) })
	})
}

func decodeRecordNamed(r wire.Reader, limits wire.Limits) (record, error) {
	var rec record
	specs := []encfmt.MemberSpec{
		{ID: recordMemberIDs[0], Name: "id", Decode: func() error {
			v, err := wire.DecodeUint64(r)
			rec.ID = v
			return err
		}},
		{ID: recordMemberIDs[1], Name: "name", Decode: func() error {
			v, err := wire.DecodeString(r)
			rec.Name = v
			return err
		}},
		{ID: recordMemberIDs[2], Name: "score", Decode: func() error {
			v, err := wire.DecodeF64(r)
			rec.Score = v
			return err
		}},
		{ID: recordMemberIDs[3], Name: "tags", Decode: func() error {
			v, err := decodeStringList(r, limits)
			rec.Tags = v
			return err
		}},
	}
	if err := encfmt.DecodeNamedMembers(r, limits, specs); err != nil {
		return record{}, err
	}
	return rec, nil
}

func encodeRecordPacked(w wire.Writer, rec record) {
	packfmt.EncodeNamedStruct(w, recordFingerprint, []func(wire.Writer){
		func(w wire.Writer) { wire.EncodeUint64(w, rec.ID) },
		func(w wire.Writer) { wire.EncodeString(w, rec.Name) },
		func(w wire.Writer) { packfmt.EncodeF64(w, rec.Score) },
		func(w wire.Writer) { encodeStringList(w, rec.Tags) },
	})
}

func decodeRecordPacked(r wire.Reader, limits wire.Limits) (record, error) {
	var rec record
	decode := []func() error{
		func() error { v, err := wire.DecodeUint64(r); rec.ID = v; return err },
		func() error { v, err := wire.DecodeString(r); rec.Name = v; return err },
		func() error { v, err := packfmt.DecodeF64(r); rec.Score = v; return err },
		func() error { v, err := decodeStringList(r, limits); rec.Tags = v; return err },
	}
	if err := packfmt.DecodeNamedStruct(r, recordFingerprint, decode); err != nil {
		return record{}, err
	}
	return rec, nil
}

func encodeStringList(w wire.Writer, tags []string) {
	wire.EncodeListHeader(w, len(tags))
	for _, t := range tags {
		wire.EncodeString(w, t)
	}
}

func decodeStringList(r wire.Reader, limits wire.Limits) ([]string, error) {
	n, err := wire.DecodeListHeader(r)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := wire.DecodeString(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// equalRecord reports whether two records carry the same fields. Records
// built by randomRecord never hold NaN scores, so float equality is safe.
func equalRecord(a, b record) bool {
	if a.ID != b.ID || a.Name != b.Name || a.Score != b.Score {
		return false
	}
	if len(a.Tags) != len(b.Tags) {
		return false
	}
	for i := range a.Tags {
		if a.Tags[i] != b.Tags[i] {
			return false
		}
	}
	return true
}

// RunCorpus generates n records and round-trips each one through both wire
// formats concurrently, one goroutine per record. Each goroutine owns its
// own pair of buffers, so the only shared state is the errgroup itself
// (spec §5: distinct Readers/Writers over distinct buffers need no
// coordination). It returns the first mismatch or decode error encountered,
// if any.
func RunCorpus(ctx context.Context, n int, limits wire.Limits) error {
	group, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		group.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rng := rand.New(rand.NewSource(int64(i) + 1))
			want := randomRecord(rng, i)

			encW := wire.NewSliceWriter(64)
			if err := encodeRecordNamed(encW, want); err != nil {
				return fmt.Errorf("corpus[%d]: encode-format encode: %w", i, err)
			}
			got, err := decodeRecordNamed(wire.NewSliceReader(encW.Bytes()), limits)
			if err != nil {
				return fmt.Errorf("corpus[%d]: encode-format decode: %w", i, err)
			}
			if !equalRecord(want, got) {
				return fmt.Errorf("corpus[%d]: encode-format round trip mismatch", i)
			}

			packW := wire.NewSliceWriter(64)
			encodeRecordPacked(packW, want)
			got, err = decodeRecordPacked(wire.NewSliceReader(packW.Bytes()), limits)
			if err != nil {
				return fmt.Errorf("corpus[%d]: pack-format decode: %w", i, err)
			}
			if !equalRecord(want, got) {
				return fmt.Errorf("corpus[%d]: pack-format round trip mismatch", i)
			}
			return nil
		})
	}
	return group.Wait()
}
