// Package transformer turns a host scene graph into a DTIF document.
//
// A run walks the tree once into three worklists (nodes, paints, assets),
// transforms each worklist in its own phase, then assembles the document.
// Items that fail with a retryable error are queued and retried first on
// the next Run of the same Orchestrator; the tree is never walked again.
package transformer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
)

// DefaultStatusYield is how long a run pauses after each status event so an
// observer can update before the next phase starts.
const DefaultStatusYield = 10 * time.Millisecond

// Orchestrator runs the transform pipeline for one root node.
type Orchestrator struct {
	root   scenegraph.Node
	name   string
	logger hclog.Logger

	host     scenegraph.Host
	resolver ContentResolver

	nodeTransformer  NodeTransformer
	paintTransformer PaintTransformer
	assetTransformer AssetTransformer

	reporter         Reporter
	recorder         RunRecorder
	statusYield      time.Duration
	includeInvisible bool

	mu   sync.Mutex
	ids  *IDSpace
	out  *outputs
	runs int

	walked        bool
	pendingNodes  []*ToTransformNode
	pendingPaints []*ToTransformPaint
	pendingAssets []*ToTransformAsset
	failedNodes   []*ToTransformNode
	failedPaints  []*ToTransformPaint
	failedAssets  []*ToTransformAsset
}

// Option is a functional option for creating an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithHost sets the host used for exports and binary reads.
func WithHost(host scenegraph.Host) Option {
	return func(o *Orchestrator) {
		o.host = host
	}
}

// WithResolver sets the content resolver for binary content.
func WithResolver(resolver ContentResolver) Option {
	return func(o *Orchestrator) {
		o.resolver = resolver
	}
}

// WithTransformers sets the three phase transformers.
func WithTransformers(nodes NodeTransformer, paints PaintTransformer, assets AssetTransformer) Option {
	return func(o *Orchestrator) {
		o.nodeTransformer = nodes
		o.paintTransformer = paints
		o.assetTransformer = assets
	}
}

// WithReporter sets the status reporter.
func WithReporter(r Reporter) Option {
	return func(o *Orchestrator) {
		o.reporter = r
	}
}

// WithRunRecorder records a report after every run.
func WithRunRecorder(r RunRecorder) Option {
	return func(o *Orchestrator) {
		o.recorder = r
	}
}

// WithStatusYield sets the pause after each status event. Zero disables it.
func WithStatusYield(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.statusYield = d
	}
}

// WithIncludeInvisible emits records for hidden nodes instead of dropping
// them.
func WithIncludeInvisible(include bool) Option {
	return func(o *Orchestrator) {
		o.includeInvisible = include
	}
}

// WithDocumentName sets the document name. Defaults to the root's name.
func WithDocumentName(name string) Option {
	return func(o *Orchestrator) {
		o.name = name
	}
}

// New creates an orchestrator for root.
func New(root scenegraph.Node, opts ...Option) (*Orchestrator, error) {
	if root == nil {
		return nil, fmt.Errorf("root node is required")
	}

	o := &Orchestrator{
		root:        root,
		name:        root.Name(),
		logger:      hclog.NewNullLogger(),
		statusYield: DefaultStatusYield,
		ids:         NewIDSpace(),
		out:         newOutputs(),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.nodeTransformer == nil || o.paintTransformer == nil || o.assetTransformer == nil {
		return nil, fmt.Errorf("node, paint and asset transformers are required")
	}
	if o.reporter == nil {
		o.reporter = ReporterFunc(func(context.Context, Status) {})
	}
	o.logger = o.logger.Named("orchestrator")

	return o, nil
}

// Run executes one pass of the pipeline and returns the assembled
// document. The report is returned even when Run fails.
//
// The first Run walks the tree. Every Run then drains each phase's failure
// queue followed by its pending items. Records emitted by earlier runs are
// kept, so calling Run again after a partial run completes the document.
// Concurrent calls are serialized.
func (o *Orchestrator) Run(ctx context.Context) (*dtif.Document, *RunReport, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.runs++
	report := &RunReport{
		RunID:    uuid.New().String(),
		Attempt:  o.runs,
		Document: o.name,
		Started:  time.Now(),
	}

	doc, err := o.run(ctx, report)
	report.Finished = time.Now()
	if err != nil {
		report.Fatal = err
		o.logger.Error("run failed",
			"run_id", report.RunID,
			"attempt", report.Attempt,
			"error", err,
		)
	} else {
		o.logger.Info("run completed",
			"run_id", report.RunID,
			"attempt", report.Attempt,
			"nodes", report.Nodes,
			"paints", report.Paints,
			"assets", report.Assets,
			"failed", len(report.Failed),
			"dropped", len(report.Dropped),
			"duration", report.Duration(),
		)
	}

	if o.recorder != nil {
		if rerr := o.recorder.RecordRun(ctx, report); rerr != nil {
			o.logger.Warn("failed to record run", "run_id", report.RunID, "error", rerr)
		}
	}

	if err != nil {
		return nil, report, err
	}
	return doc, report, nil
}

func (o *Orchestrator) run(ctx context.Context, report *RunReport) (*dtif.Document, error) {
	if err := o.status(ctx, report, Status{Stage: StageStart}); err != nil {
		return nil, err
	}

	if !o.walked {
		walk := ProcessNodeTree(o.root, o.ids)
		o.pendingNodes = walk.Nodes
		o.pendingPaints = walk.Paints
		o.pendingAssets = walk.Assets
		o.walked = true
		o.logger.Debug("walked tree",
			"nodes", len(walk.Nodes),
			"paints", len(walk.Paints),
			"assets", len(walk.Assets),
		)
	}

	if err := o.status(ctx, report, Status{
		Stage:      StageTraversedTree,
		NodeCount:  len(o.failedNodes) + len(o.pendingNodes),
		PaintCount: len(o.failedPaints) + len(o.pendingPaints),
		AssetCount: len(o.failedAssets) + len(o.pendingAssets),
	}); err != nil {
		return nil, err
	}

	pc := &PipelineContext{
		Root:             o.root,
		Host:             o.host,
		Resolver:         o.resolver,
		Logger:           o.logger,
		IncludeInvisible: o.includeInvisible,
		ids:              o.ids,
		out:              o.out,
	}

	if err := o.status(ctx, report, Status{Stage: StageTransformingNodes}); err != nil {
		return nil, err
	}
	o.failedNodes, o.pendingNodes = runPhase(ctx, o, report, PhaseNodes, o.failedNodes, o.pendingNodes,
		func(n *ToTransformNode) ContinuousID { return n.ID },
		ContinuousID.NodeID,
		o.nodeTransformer.TransformNode, pc,
		func(rec *dtif.Node, id string) { rec.ID = id },
		o.out.nodes,
	)

	if err := o.status(ctx, report, Status{Stage: StageTransformingPaints}); err != nil {
		return nil, err
	}
	o.failedPaints, o.pendingPaints = runPhase(ctx, o, report, PhasePaints, o.failedPaints, o.pendingPaints,
		func(p *ToTransformPaint) ContinuousID { return p.ID },
		ContinuousID.PaintID,
		o.paintTransformer.TransformPaint, pc,
		func(rec *dtif.Paint, id string) { rec.ID = id },
		o.out.paints,
	)

	if err := o.status(ctx, report, Status{Stage: StageTransformingAssets}); err != nil {
		return nil, err
	}
	o.failedAssets, o.pendingAssets = runPhase(ctx, o, report, PhaseAssets, o.failedAssets, o.pendingAssets,
		func(a *ToTransformAsset) ContinuousID { return a.ID },
		ContinuousID.AssetID,
		o.assetTransformer.TransformAsset, pc,
		func(rec *dtif.Asset, id string) { rec.ID = id },
		o.out.assets,
	)

	if err := o.status(ctx, report, Status{Stage: StageConstructingDocument}); err != nil {
		return nil, err
	}
	doc, err := o.assemble(report)
	if err != nil {
		return nil, err
	}

	if err := o.status(ctx, report, Status{Stage: StageEnd}); err != nil {
		return nil, err
	}
	return doc, nil
}

// record is an output record that can check its own structure.
type record interface {
	Validate() error
}

// runPhase drains failed then pending items through transform. Each
// emitted record gets its ID and is validated before it is stored in out;
// a record that does not validate is dropped with KindInvalidRecord.
// Retryable failures are returned as the new failure queue; the returned
// pending queue is always empty.
func runPhase[I any, R record](
	ctx context.Context,
	o *Orchestrator,
	report *RunReport,
	phase Phase,
	failed, pending []I,
	idOf func(I) ContinuousID,
	recordID func(ContinuousID) string,
	transform func(context.Context, I, *PipelineContext) Result[R],
	pc *PipelineContext,
	setID func(R, string),
	out map[ContinuousID]R,
) ([]I, []I) {
	pr := &report.Phases[phase]
	pr.Phase = phase
	pr.Retried = len(failed)

	queue := make([]I, 0, len(failed)+len(pending))
	queue = append(queue, failed...)
	queue = append(queue, pending...)
	pr.Queued = len(queue)

	var nextFailed []I
	for _, item := range queue {
		id := idOf(item)
		res := safeTransform(ctx, item, transform, pc, recordID(id))
		if res.IsOk() {
			setID(res.Record, recordID(id))
			if err := res.Record.Validate(); err != nil {
				res = Fail[R](NewError(KindInvalidRecord, recordID(id), err))
			} else {
				out[id] = res.Record
				pr.Emitted++
				continue
			}
		}

		report.record(phase, res.Err)
		if res.Err.Retryable() {
			nextFailed = append(nextFailed, item)
			o.logger.Warn("item failed, queued for retry",
				"phase", phase,
				"item", res.Err.Item,
				"kind", res.Err.Kind,
				"error", res.Err.Err,
			)
		} else {
			o.logger.Debug("item dropped",
				"phase", phase,
				"item", res.Err.Item,
				"kind", res.Err.Kind,
			)
		}
	}

	o.logger.Info("phase completed",
		"phase", phase,
		"queued", pr.Queued,
		"retried", pr.Retried,
		"emitted", pr.Emitted,
		"failed", pr.Failed,
		"dropped", pr.Dropped,
	)

	return nextFailed, nil
}

// safeTransform calls transform and turns a panic or an empty result into
// an internal error, so one broken item cannot take the run down.
func safeTransform[I any, R any](
	ctx context.Context,
	item I,
	transform func(context.Context, I, *PipelineContext) Result[R],
	pc *PipelineContext,
	itemID string,
) (res Result[R]) {
	defer func() {
		if r := recover(); r != nil {
			res = Fail[R](NewError(KindInternal, itemID, fmt.Errorf("panic: %v", r)))
		}
	}()

	res = transform(ctx, item, pc)
	if res.Err != nil {
		if res.Err.Item == "" {
			res.Err.Item = itemID
		}
		return res
	}
	if isNil(res.Record) {
		return Fail[R](NewError(KindInternal, itemID, errors.New("transformer returned no record")))
	}
	return res
}

func isNil(v any) bool {
	switch r := v.(type) {
	case nil:
		return true
	case *dtif.Node:
		return r == nil
	case *dtif.Paint:
		return r == nil
	case *dtif.Asset:
		return r == nil
	default:
		return false
	}
}

// assemble builds the document from everything emitted so far.
func (o *Orchestrator) assemble(report *RunReport) (*dtif.Document, error) {
	root, ok := o.out.nodes[ZeroID]
	if !ok {
		for _, f := range report.Failed {
			if f.Phase == PhaseNodes && f.Err.Item == ZeroID.NodeID() {
				return nil, fmt.Errorf("%w: %w", ErrRootResolution, f.Err)
			}
		}
		for _, d := range report.Dropped {
			if d.Phase == PhaseNodes && d.Err.Item == ZeroID.NodeID() {
				return nil, fmt.Errorf("%w: %w", ErrRootResolution, d.Err)
			}
		}
		return nil, ErrRootResolution
	}

	doc := &dtif.Document{
		Version:    dtif.Version,
		Name:       o.name,
		Size:       root.Size,
		Viewport:   dtif.Viewport{PhysicalSize: root.Size},
		RootNodeID: ZeroID.NodeID(),
		Nodes:      make([]*dtif.Node, 0, len(o.out.nodes)),
		Paints:     make([]*dtif.Paint, 0, len(o.out.paints)),
		Assets:     make([]*dtif.Asset, 0, len(o.out.assets)),
	}

	for _, id := range sortedIDs(o.out.nodes) {
		// Pruning edits node slices; stored records must stay intact for
		// later runs.
		n := o.out.nodes[id].Clone()
		if id == ZeroID {
			n.Transform = dtif.Transform{}
		}
		doc.Nodes = append(doc.Nodes, n)
	}
	for _, id := range sortedIDs(o.out.paints) {
		doc.Paints = append(doc.Paints, o.out.paints[id])
	}
	for _, id := range sortedIDs(o.out.assets) {
		doc.Assets = append(doc.Assets, o.out.assets[id])
	}

	report.Pruned = doc.PruneDangling()
	if report.Pruned > 0 {
		o.logger.Debug("pruned dangling references", "count", report.Pruned)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	report.Nodes = len(doc.Nodes)
	report.Paints = len(doc.Paints)
	report.Assets = len(doc.Assets)
	return doc, nil
}

func sortedIDs[V any](m map[ContinuousID]V) []ContinuousID {
	ids := make([]ContinuousID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// status reports s and then yields so the observer can catch up.
func (o *Orchestrator) status(ctx context.Context, report *RunReport, s Status) error {
	s.RunID = report.RunID
	o.logger.Debug("status", "stage", s.Stage)
	o.reporter.Report(ctx, s)

	if o.statusYield <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(o.statusYield)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Pending returns the number of items queued for the next run in each
// phase, including failures.
func (o *Orchestrator) Pending() (nodes, paints, assets int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.failedNodes) + len(o.pendingNodes),
		len(o.failedPaints) + len(o.pendingPaints),
		len(o.failedAssets) + len(o.pendingAssets)
}
