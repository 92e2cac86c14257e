package matroska

import (
	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/reader"
)

// EBMLHeader is the final shape of the EBML header element (spec §4.E,
// "Header validation"), grounded on the teacher's EBMLHeader (ebml.go).
type EBMLHeader struct {
	Version            uint64
	ReadVersion        uint64
	MaxIDLength        uint64
	MaxSizeLength      uint64
	DocType            string
	DocTypeVersion     uint64
	DocTypeReadVersion uint64
}

var headerChildren = map[uint64]bool{
	IDEBMLVersion: true, IDEBMLReadVersion: true, IDEBMLMaxIDLength: true,
	IDEBMLMaxSizeLength: true, IDEBMLDocType: true, IDEBMLDocTypeVersion: true,
	IDEBMLDocTypeReadVersion: true,
}

// parseEBMLHeader reads the EBML header element body into its final shape,
// per the field table in spec §4.E. hdr.BodyPos must already be the
// reader's current position (i.e. ReadHeader for IDEBMLHeader has just
// run). This is structural decode only — it does not validate the
// decoded fields against spec §4.E's rule table. Probe relies on exactly
// that split (a structurally well-formed header scores 1.0 regardless of
// doc_type); callers that need the rule table applied (Demuxer.Open) call
// validateHeader separately. The original source keeps the same split:
// Header::parse is structural and used by probe, while handle_header runs
// the validation during open.
func parseEBMLHeader(r *reader.Reader, hdr ebml.ElemHdr) (EBMLHeader, error) {
	var (
		version, readVersion               ebml.Single[uint64]
		maxIDLength, maxSizeLength         ebml.Single[uint64]
		docType                            ebml.Single[string]
		docTypeVersion, docTypeReadVersion ebml.Single[uint64]
	)

	end, hasEnd := hdr.EndPos()
	err := ebml.ReadChildren(r, end, hasEnd, 0, func(id uint64) bool { return headerChildren[id] },
		func(r *reader.Reader, child ebml.ElemHdr) error {
			switch child.ID {
			case IDEBMLVersion:
				v, err := ebml.Unsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return version.Insert(v)
			case IDEBMLReadVersion:
				v, err := ebml.Unsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return readVersion.Insert(v)
			case IDEBMLMaxIDLength:
				v, err := ebml.Unsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return maxIDLength.Insert(v)
			case IDEBMLMaxSizeLength:
				v, err := ebml.Unsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return maxSizeLength.Insert(v)
			case IDEBMLDocType:
				v, err := ebml.NonEmptyString(r, int(child.Size))
				if err != nil {
					return err
				}
				return docType.Insert(v)
			case IDEBMLDocTypeVersion:
				v, err := ebml.Unsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return docTypeVersion.Insert(v)
			case IDEBMLDocTypeReadVersion:
				v, err := ebml.Unsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return docTypeReadVersion.Insert(v)
			}
			return nil
		})
	if err != nil {
		return EBMLHeader{}, err
	}

	h := EBMLHeader{
		Version:            version.OrDefault(1),
		ReadVersion:        readVersion.OrDefault(1),
		MaxIDLength:        maxIDLength.OrDefault(4),
		MaxSizeLength:      maxSizeLength.OrDefault(8),
		DocType:            docType.OrDefault("matroska"),
		DocTypeVersion:     docTypeVersion.OrDefault(1),
		DocTypeReadVersion: docTypeReadVersion.OrDefault(1),
	}
	return h, nil
}

// validateHeader applies the field rule table from spec §4.E.
func validateHeader(h EBMLHeader) error {
	if h.Version != 1 {
		return ErrUnknownEBMLVersion
	}
	if h.MaxIDLength > 8 {
		return ErrIDTooLong
	}
	if h.MaxSizeLength > 8 {
		return ErrSizeTooLong
	}
	if h.DocType != "matroska" && h.DocType != "webm" {
		return ErrUnknownDocType
	}
	if h.DocTypeVersion > 4 {
		return ErrUnknownDocTypeVersion
	}
	return nil
}
