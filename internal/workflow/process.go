// Package workflow ties resolution, formatting and output together for one
// invocation.
package workflow

import (
	"io"

	"github.com/c2nes/alfred-time/internal/feedback"
	"github.com/c2nes/alfred-time/internal/format"
	"github.com/c2nes/alfred-time/internal/log"
	"github.com/c2nes/alfred-time/internal/resolve"
)

type Processor struct {
	resolver *resolve.Resolver
	emitter  feedback.Emitter
	out      io.Writer
}

func New(r *resolve.Resolver, e feedback.Emitter, out io.Writer) *Processor {
	return &Processor{resolver: r, emitter: e, out: out}
}

// Process resolves query and writes its six items. An unresolved query writes
// nothing and is not an error; Alfred then shows its own fallback.
func (p *Processor) Process(query *string) error {
	m, ok := p.resolver.Resolve(query)
	if !ok {
		return nil
	}
	items := format.Items(m)
	log.Debug("emitting items", "moment", m, "count", len(items))
	return p.emitter.Emit(p.out, items)
}
