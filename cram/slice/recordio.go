// Copyright ©2017 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slice

import (
	"github.com/biogo/cram/dataseries"
	"github.com/biogo/cram/encoding"
	"github.com/biogo/cram/errs"
	"github.com/biogo/cram/feature"
	"github.com/biogo/cram/header"
	"github.com/biogo/cram/record"
	"github.com/biogo/cram/sam"
)

// codecs bundles the reconstructed per-series codecs used to read or
// write every record of a slice, resolved once against the
// compression header rather than per record (§4.5).
type codecs struct {
	bf, cf, rl, ap, rg, mf, ns, np, ts, nf, tl encoding.IntCodec
	ri                                         encoding.IntCodec // only resolved when the slice is multi-ref
	fn, fp, dl, rs, pd, hc                     encoding.IntCodec
	fc, bs, mq                                 encoding.ByteCodec
	rn, in, sc, ba, qs                         encoding.ByteArrayCodec
}

func newCodecs(ch *header.CompressionHeader, multiRef bool) (*codecs, error) {
	var c codecs
	var err error
	intFns := []struct {
		s   dataseries.Series
		dst *encoding.IntCodec
	}{
		{dataseries.BF, &c.bf}, {dataseries.CF, &c.cf}, {dataseries.RL, &c.rl},
		{dataseries.AP, &c.ap}, {dataseries.RG, &c.rg}, {dataseries.MF, &c.mf},
		{dataseries.NS, &c.ns}, {dataseries.NP, &c.np}, {dataseries.TS, &c.ts},
		{dataseries.NF, &c.nf}, {dataseries.TL, &c.tl}, {dataseries.FN, &c.fn},
		{dataseries.FP, &c.fp}, {dataseries.DL, &c.dl}, {dataseries.RS, &c.rs},
		{dataseries.PD, &c.pd}, {dataseries.HC, &c.hc},
	}
	for _, f := range intFns {
		*f.dst, err = ch.Encodings.IntCodec(f.s)
		if err != nil {
			return nil, err
		}
	}
	if multiRef {
		c.ri, err = ch.Encodings.IntCodec(dataseries.RI)
		if err != nil {
			return nil, err
		}
	}

	byteFns := []struct {
		s   dataseries.Series
		dst *encoding.ByteCodec
	}{
		{dataseries.FC, &c.fc}, {dataseries.BS, &c.bs}, {dataseries.MQ, &c.mq},
	}
	for _, f := range byteFns {
		*f.dst, err = ch.Encodings.ByteCodec(f.s)
		if err != nil {
			return nil, err
		}
	}

	byteArrayFns := []struct {
		s   dataseries.Series
		dst *encoding.ByteArrayCodec
	}{
		{dataseries.IN, &c.in}, {dataseries.SC, &c.sc}, {dataseries.BA, &c.ba}, {dataseries.QS, &c.qs},
	}
	for _, f := range byteArrayFns {
		*f.dst, err = ch.Encodings.ByteArrayCodec(f.s)
		if err != nil {
			return nil, err
		}
	}
	if ch.Preservation.ReadNamesIncluded {
		c.rn, err = ch.Encodings.ByteArrayCodec(dataseries.RN)
		if err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// writeRecords writes records onto ss using c, following the §4.7
// field layout: structural fields, the record's tags (via the
// preservation map's tag-id dictionary), then either its full bases
// (unmapped) or its read-feature edit script (mapped).
func writeRecords(ss *encoding.Streams, ch *header.CompressionHeader, c *codecs, records []*record.Record, multiRef bool) error {
	var prevAP int32
	havePrevAP := false
	for _, r := range records {
		if err := c.bf.WriteInt(ss, int32(r.Flags)); err != nil {
			return err
		}
		if err := c.cf.WriteInt(ss, int32(r.CRAM)); err != nil {
			return err
		}
		if multiRef {
			if err := c.ri.WriteInt(ss, int32(r.RefID)); err != nil {
				return err
			}
		}
		if err := c.rl.WriteInt(ss, int32(r.ReadLength)); err != nil {
			return err
		}

		apVal := int32(r.AlignmentStart)
		toWrite := apVal
		if ch.Preservation.APDelta {
			if havePrevAP {
				toWrite = apVal - prevAP
			}
			prevAP = apVal
			havePrevAP = true
		}
		if err := c.ap.WriteInt(ss, toWrite); err != nil {
			return err
		}
		if err := c.rg.WriteInt(ss, int32(r.ReadGroupID)); err != nil {
			return err
		}
		if ch.Preservation.ReadNamesIncluded {
			if err := c.rn.WriteByteArray(ss, []byte(r.ReadName)); err != nil {
				return err
			}
		}
		if err := c.mf.WriteInt(ss, int32(r.MateFlags)); err != nil {
			return err
		}
		if err := c.ns.WriteInt(ss, int32(r.MateRefID)); err != nil {
			return err
		}
		if err := c.np.WriteInt(ss, int32(r.MateAlignmentStart)); err != nil {
			return err
		}
		if err := c.ts.WriteInt(ss, int32(r.TemplateSize)); err != nil {
			return err
		}
		if err := c.nf.WriteInt(ss, int32(r.RecordsToNextFrag)); err != nil {
			return err
		}

		idx, group, err := tagGroup(ch.Preservation.TagIDDictionary, r.Tags)
		if err != nil {
			return err
		}
		if err := c.tl.WriteInt(ss, int32(idx)); err != nil {
			return err
		}
		for _, id := range group {
			v, err := tagValue(r.Tags, id)
			if err != nil {
				return err
			}
			tc, err := ch.TagEncodings.ByteArrayCodec(id.Int())
			if err != nil {
				return err
			}
			if err := tc.WriteByteArray(ss, v); err != nil {
				return err
			}
		}

		if !r.IsMapped() {
			if err := c.fn.WriteInt(ss, 0); err != nil {
				return err
			}
			if err := c.ba.WriteByteArray(ss, r.ReadBases); err != nil {
				return err
			}
		} else {
			if err := c.fn.WriteInt(ss, int32(len(r.Features))); err != nil {
				return err
			}
			prevPos := 0
			for _, f := range r.Features {
				if err := c.fc.WriteByte(ss, byte(f.Code)); err != nil {
					return err
				}
				if err := c.fp.WriteInt(ss, int32(f.Pos-prevPos)); err != nil {
					return err
				}
				prevPos = f.Pos
				if err := writeFeatureOperand(ss, c, f); err != nil {
					return err
				}
			}
		}
		if err := c.mq.WriteByte(ss, r.MappingQuality); err != nil {
			return err
		}
		if err := c.qs.WriteByteArray(ss, r.QualityScores); err != nil {
			return err
		}
	}
	return nil
}

func writeFeatureOperand(ss *encoding.Streams, c *codecs, f feature.Feature) error {
	switch f.Code {
	case feature.Substitution:
		return c.bs.WriteByte(ss, f.SubCode)
	case feature.Insertion, feature.Bases:
		return c.in.WriteByteArray(ss, f.Seq)
	case feature.SoftClip:
		return c.sc.WriteByteArray(ss, f.Seq)
	case feature.Deletion:
		return c.dl.WriteInt(ss, int32(f.Len))
	case feature.RefSkip:
		return c.rs.WriteInt(ss, int32(f.Len))
	case feature.HardClip:
		return c.hc.WriteInt(ss, int32(f.Len))
	case feature.Padding:
		return c.pd.WriteInt(ss, int32(f.Len))
	case feature.InsertBase, feature.ReadBase:
		return c.in.WriteByteArray(ss, []byte{f.Base})
	case feature.BaseQualityScore, feature.Scores:
		return nil
	default:
		return &errs.MalformedError{Context: "unsupported read feature code"}
	}
}

// readRecords reads numRecords records from ss using c, the inverse of
// writeRecords.
func readRecords(ss *encoding.Streams, ch *header.CompressionHeader, c *codecs, numRecords int, multiRef bool, fixedRefID int) ([]*record.Record, error) {
	out := make([]*record.Record, numRecords)
	var prevAP int32
	havePrevAP := false
	for i := range out {
		r := &record.Record{}

		bf, err := c.bf.ReadInt(ss)
		if err != nil {
			return nil, err
		}
		r.Flags = sam.Flags(bf)
		cf, err := c.cf.ReadInt(ss)
		if err != nil {
			return nil, err
		}
		r.CRAM = record.Flags(cf)

		if multiRef {
			ri, err := c.ri.ReadInt(ss)
			if err != nil {
				return nil, err
			}
			r.RefID = int(ri)
		} else {
			r.RefID = fixedRefID
		}

		rl, err := c.rl.ReadInt(ss)
		if err != nil {
			return nil, err
		}
		r.ReadLength = int(rl)

		ap, err := c.ap.ReadInt(ss)
		if err != nil {
			return nil, err
		}
		if ch.Preservation.APDelta {
			if havePrevAP {
				ap += prevAP
			}
			prevAP = ap
			havePrevAP = true
		}
		r.AlignmentStart = int(ap)

		rg, err := c.rg.ReadInt(ss)
		if err != nil {
			return nil, err
		}
		r.ReadGroupID = int(rg)

		if ch.Preservation.ReadNamesIncluded {
			name, err := c.rn.ReadByteArray(ss)
			if err != nil {
				return nil, err
			}
			r.ReadName = string(name)
		}

		mf, err := c.mf.ReadInt(ss)
		if err != nil {
			return nil, err
		}
		r.MateFlags = record.MateFlags(mf)
		ns, err := c.ns.ReadInt(ss)
		if err != nil {
			return nil, err
		}
		r.MateRefID = int(ns)
		np, err := c.np.ReadInt(ss)
		if err != nil {
			return nil, err
		}
		r.MateAlignmentStart = int(np)
		ts, err := c.ts.ReadInt(ss)
		if err != nil {
			return nil, err
		}
		r.TemplateSize = int(ts)
		nf, err := c.nf.ReadInt(ss)
		if err != nil {
			return nil, err
		}
		r.RecordsToNextFrag = int(nf)

		tl, err := c.tl.ReadInt(ss)
		if err != nil {
			return nil, err
		}
		if int(tl) < 0 || int(tl) >= len(ch.Preservation.TagIDDictionary) {
			return nil, &errs.MalformedError{Context: "tag id dictionary index out of range"}
		}
		group := ch.Preservation.TagIDDictionary[tl]
		r.Tags = make([]record.Tag, len(group))
		for j, id := range group {
			tc, err := ch.TagEncodings.ByteArrayCodec(id.Int())
			if err != nil {
				return nil, err
			}
			v, err := tc.ReadByteArray(ss)
			if err != nil {
				return nil, err
			}
			r.Tags[j] = record.Tag{ID: id, Value: v}
		}

		fn, err := c.fn.ReadInt(ss)
		if err != nil {
			return nil, err
		}
		if fn == 0 && r.Flags&sam.Unmapped != 0 {
			bases, err := c.ba.ReadByteArray(ss)
			if err != nil {
				return nil, err
			}
			r.ReadBases = bases
		} else if fn > 0 {
			features := make([]feature.Feature, fn)
			pos := 0
			for j := range features {
				code, err := c.fc.ReadByte(ss)
				if err != nil {
					return nil, err
				}
				delta, err := c.fp.ReadInt(ss)
				if err != nil {
					return nil, err
				}
				pos += int(delta)
				f := feature.Feature{Code: feature.Code(code), Pos: pos}
				if err := readFeatureOperand(ss, c, &f); err != nil {
					return nil, err
				}
				features[j] = f
			}
			r.Features = features
		}

		mq, err := c.mq.ReadByte(ss)
		if err != nil {
			return nil, err
		}
		r.MappingQuality = mq
		qs, err := c.qs.ReadByteArray(ss)
		if err != nil {
			return nil, err
		}
		r.QualityScores = qs

		r.NextMate = record.NoMate
		r.PrevMate = record.NoMate
		out[i] = r
	}
	return out, nil
}

func readFeatureOperand(ss *encoding.Streams, c *codecs, f *feature.Feature) error {
	switch f.Code {
	case feature.Substitution:
		v, err := c.bs.ReadByte(ss)
		f.SubCode = v
		return err
	case feature.Insertion, feature.Bases:
		v, err := c.in.ReadByteArray(ss)
		f.Seq = v
		return err
	case feature.SoftClip:
		v, err := c.sc.ReadByteArray(ss)
		f.Seq = v
		return err
	case feature.Deletion:
		v, err := c.dl.ReadInt(ss)
		f.Len = int(v)
		return err
	case feature.RefSkip:
		v, err := c.rs.ReadInt(ss)
		f.Len = int(v)
		return err
	case feature.HardClip:
		v, err := c.hc.ReadInt(ss)
		f.Len = int(v)
		return err
	case feature.Padding:
		v, err := c.pd.ReadInt(ss)
		f.Len = int(v)
		return err
	case feature.InsertBase, feature.ReadBase:
		v, err := c.in.ReadByteArray(ss)
		if err != nil {
			return err
		}
		if len(v) != 1 {
			return &errs.MalformedError{Context: "insert/read base feature"}
		}
		f.Base = v[0]
		return nil
	case feature.BaseQualityScore, feature.Scores:
		return nil
	default:
		return &errs.MalformedError{Context: "unsupported read feature code"}
	}
}
