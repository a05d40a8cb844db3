package imports

import (
	"context"

	"github.com/NilFoundation/solforge/common/logging"
)

// Resolver discovers and fetches the transitive imports of an entry source.
type Resolver struct {
	namespace string
	fetcher   Fetcher
	logger    logging.Logger
}

func NewResolver(namespace string, fetcher Fetcher, logger logging.Logger) *Resolver {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Resolver{
		namespace: namespace,
		fetcher:   fetcher,
		logger:    logger,
	}
}

func (r *Resolver) Namespace() string {
	return r.namespace
}

type resolveOptions struct {
	overlay MapFetcher
}

type ResolveOption func(*resolveOptions)

// WithOverlay makes the given sources (keyed by source-unit name) take precedence over the fetcher.
func WithOverlay(sources map[string]string) ResolveOption {
	return func(o *resolveOptions) {
		o.overlay = sources
	}
}

// ResolveAll walks the imports of the entry depth-first and returns the set of all reachable units.
// Imports that cannot be fetched are logged and skipped. Only context cancellation fails the call.
func (r *Resolver) ResolveAll(
	ctx context.Context, fileName, entryText string, opts ...ResolveOption,
) (*SourceSet, error) {
	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}

	fetcher := r.fetcher
	if len(o.overlay) > 0 {
		fetcher = ChainFetcher{o.overlay, r.fetcher}
	}

	w := &walker{
		Resolver: r,
		fetcher:  fetcher,
		set:      NewSourceSet(fileName, entryText),
		visited:  map[string]struct{}{Canonical(r.namespace, fileName): {}},
	}
	if err := w.visit(ctx, w.set.Entry()); err != nil {
		return nil, err
	}

	r.logger.Debug().
		Str(logging.FieldFileName, fileName).
		Int(logging.FieldSourceCount, w.set.Len()).
		Msg("Imports resolved")
	return w.set, nil
}

type walker struct {
	*Resolver
	fetcher Fetcher
	set     *SourceSet
	visited map[string]struct{}
}

func (w *walker) visit(ctx context.Context, unit *SourceUnit) error {
	for _, specifier := range Specifiers(unit.Content) {
		name, path := Resolve(w.namespace, unit.Name, specifier)
		if _, ok := w.visited[path]; ok || w.set.Contains(name) {
			continue
		}
		w.visited[path] = struct{}{}

		if err := ctx.Err(); err != nil {
			return err
		}
		if w.fetcher == nil {
			w.logger.Warn().Str(logging.FieldImport, specifier).Msg("No source fetcher configured, import skipped")
			continue
		}

		text, err := w.fetcher.Fetch(ctx, name, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			w.logger.Warn().
				Err(&FetchError{Name: name, Path: path, Err: err}).
				Str(logging.FieldImport, specifier).
				Str(logging.FieldSourcePath, unit.Path).
				Msg("Import skipped")
			continue
		}

		dep := &SourceUnit{Path: path, Name: name, Content: text}
		if !w.set.Add(dep) {
			continue
		}
		if err := w.visit(ctx, dep); err != nil {
			return err
		}
	}
	return nil
}
