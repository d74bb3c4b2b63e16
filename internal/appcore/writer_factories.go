package appcore

import (
	"io"

	"episcore-core/matrix"
	"episcore/internal/engine"
	"episcore/internal/pretty"
	"episcore/internal/runutil"
	"episcore/internal/writers"
)

// HitWriterFactory starts the hit writer for the chosen format.
type HitWriterFactory struct {
	Opt writers.HitOptions
}

func NewHitWriterFactory(format string, sort, rank, header, mutations, prettyMode bool, lookup matrix.Lookup) HitWriterFactory {
	return HitWriterFactory{Opt: writers.HitOptions{
		Format:    format,
		Sort:      sort,
		Rank:      rank,
		Header:    header,
		Mutations: mutations,
		Pretty:    prettyMode,
		Lookup:    lookup,
		PrettyOpt: pretty.DefaultOptions,
	}}
}

func (w HitWriterFactory) NeedSeq() bool {
	return runutil.ComputeNeedSeq(w.Opt.Format, w.Opt.Pretty)
}

func (w HitWriterFactory) Start(out io.Writer, bufSize int) (chan<- engine.Hit, <-chan error) {
	return writers.StartHitWriter(out, w.Opt, bufSize)
}
