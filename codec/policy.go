package codec

// Leniency is one of three decode-time policy settings: Strict rejects
// any non-canonical wire form, Warn accepts it but fires a diagnostic,
// Allow accepts it silently.
type Leniency int

const (
	Strict Leniency = iota
	Warn
	Allow
)

// DiagnosticCategory names which leniency category a Diagnostic belongs
// to, so a caller with one Policy value can apply different leniency
// per concern (e.g. strict on length encoding, warn on tag order).
type DiagnosticCategory int

const (
	NonMinimalLength DiagnosticCategory = iota
	NonMinimalInteger
	OutOfOrderTag
	UnknownTag
)

// Diagnostic is the value fed to a Policy's Diagnostics callback when a
// Warn-leniency category tolerates a non-canonical input.
type Diagnostic struct {
	Category DiagnosticCategory
	Message  string
}

// Policy bundles a Strict/Warn/Allow leniency setting per category with
// the diagnostic sink a Warn decode fires into. A zero Policy is
// all-Strict with no diagnostics sink, which is the safe default for
// decoding untrusted input.
type Policy struct {
	Length      Leniency
	Integer     Leniency
	TagOrder    Leniency
	UnknownTags Leniency

	// Diagnostics receives one Diagnostic per Warn-leniency acceptance.
	// May be nil, in which case diagnostics are simply discarded.
	Diagnostics func(Diagnostic)
}

// StrictPolicy is every category at Strict with no diagnostics sink.
func StrictPolicy() Policy {
	return Policy{}
}

// report fires d into p's Diagnostics sink if set; a no-op otherwise.
func (p Policy) report(d Diagnostic) {
	if p.Diagnostics != nil {
		p.Diagnostics(d)
	}
}

// allow applies leniency to a detected non-canonical condition: Strict
// returns false (caller should fail EncodingNonCanonical), Warn reports
// the diagnostic and returns true, Allow silently returns true.
func (p Policy) allow(l Leniency, d Diagnostic) bool {
	switch l {
	case Strict:
		return false
	case Warn:
		p.report(d)
		return true
	default: // Allow
		return true
	}
}

// AllowLength applies the Length leniency category: Strict returns
// false (caller should fail EncodingNonCanonical), Warn reports the
// diagnostic and returns true, Allow silently returns true. Exported,
// like the three Allow methods below, so codec/icao94's decoders can
// apply it.
func (p Policy) AllowLength(msg string) bool {
	return p.allow(p.Length, Diagnostic{Category: NonMinimalLength, Message: msg})
}

// AllowInteger applies the Integer leniency category.
func (p Policy) AllowInteger(msg string) bool {
	return p.allow(p.Integer, Diagnostic{Category: NonMinimalInteger, Message: msg})
}

// AllowTagOrder applies the TagOrder leniency category.
func (p Policy) AllowTagOrder(msg string) bool {
	return p.allow(p.TagOrder, Diagnostic{Category: OutOfOrderTag, Message: msg})
}

// AllowUnknownTag applies the UnknownTags leniency category.
func (p Policy) AllowUnknownTag(msg string) bool {
	return p.allow(p.UnknownTags, Diagnostic{Category: UnknownTag, Message: msg})
}
