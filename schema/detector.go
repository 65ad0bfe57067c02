package schema

// Detector chooses encoders and decoders for declared types of fields left on automatic adapter selection.
type Detector interface {
	DetectEncoder(t *Type) Func
	DetectDecoder(t *Type) Func
}

// DefaultDetector coerces nested objects and lists of objects on write and never decodes on read.
// Embed it to override one side only.
type DefaultDetector struct{}

var _ Detector = DefaultDetector{}

func (d DefaultDetector) DetectEncoder(t *Type) Func {
	switch t.Kind() {
	case KindObject:
		if t.schema == nil {
			return nil
		}
		return (&ObjectEncoder{Schema: t.schema}).Encode
	case KindList:
		if t.elem == nil {
			return nil
		}
		if elem := d.DetectEncoder(t.elem); elem != nil {
			return (&ArrayEncoder{Elem: elem}).Encode
		}
	case KindUnion:
		if alts := t.NonNull(); len(alts) == 1 {
			return d.DetectEncoder(alts[0])
		}
	case KindStatic, KindExcluded:
		return d.DetectEncoder(t.elem)
	}
	return nil
}

func (DefaultDetector) DetectDecoder(*Type) Func {
	return nil
}
