// Package emitter is the top-level entry point for the memory layout
// and story-file emission pipeline (spec.md section 2): Validate the
// model, run the Layout Planner, and optionally re-validate the
// finished image.
package emitter

import (
	"github.com/alanquatermain/zilc/layout"
	"github.com/alanquatermain/zilc/model"
	"github.com/alanquatermain/zilc/validate"
	"github.com/alanquatermain/zilc/zerrors"
	"github.com/alanquatermain/zilc/zlog"
)

// Options controls optional post-emission behavior.
type Options struct {
	// Validate re-parses the finished image and returns any Validator
	// findings (spec.md section 4.7). Emission has already succeeded
	// by the time this runs, so findings are warnings, not errors.
	Validate bool

	Log *zlog.Logger
}

// Emit validates p, emits a complete story file, and optionally
// re-validates it. A single-shot failure (model invariant violation,
// encoding error, overflow, or alignment error) aborts and returns no
// partial image, per spec.md section 4.7's failure model.
func Emit(p *model.Program, opts Options) ([]byte, []zerrors.Warning, error) {
	log := opts.Log
	if log == nil {
		log = zlog.Default()
	}

	log.Debugf("validating program model: version %d, %d objects, %d dictionary words, %d strings",
		p.Version, len(p.Objects), len(p.DictionaryWords), len(p.Strings))

	if err := model.Validate(p); err != nil {
		log.Errorf("model validation failed: %v", err)
		return nil, nil, err
	}

	img, err := layout.Emit(p)
	if err != nil {
		log.Errorf("emission failed: %v", err)
		return nil, nil, err
	}

	log.Infof("emitted %d byte image (static base 0x%04x, high base 0x%04x)", len(img.Bytes), img.StaticBase, img.HighBase)

	var warnings []zerrors.Warning
	if opts.Validate {
		warnings = validate.Image(img.Bytes, p.Version)
		for _, w := range warnings {
			log.Warningf("validator: %s", w.String())
		}
	}

	return img.Bytes, warnings, nil
}
