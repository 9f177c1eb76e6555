// Package listmode decodes the bit-packed event stream that follows an RDF
// header.
//
// Two record generations exist. The older Dimension encoding packs 4-byte
// coincidence events and 8-byte time and gating records into 32-bit words;
// the newer RDF8 encoding uses 16-bit words, 6-byte events carrying a signed
// time-of-flight bin, 6-byte time markers and 16-byte extended records. The
// size of each record is known only after inspecting its leading bits, so a
// Reader peeks the generation's minimum size, sizes the record, then decodes
// it. Words are brought into host order before any bit field is extracted,
// so results do not depend on the file or host byte order.
//
//	r, err := listmode.Open("scan.BLF", listmode.Options{SkipUnknown: true})
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	for rec, err := range r.Records() {
//	    if err != nil {
//	        return err
//	    }
//	    if rec.IsEvent() && rec.Event.Prompt {
//	        prompts++
//	    }
//	}
//
// A Reader holds a cursor and must not be shared between goroutines.
package listmode
