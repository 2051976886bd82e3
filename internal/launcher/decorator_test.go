package launcher

import (
	"errors"
	"testing"

	"modlaunch/internal/service"
	"modlaunch/internal/transform"
)

type fakeService struct {
	name        string
	loadErr     error
	initErr     error
	xforms      []transform.Transformer
	scanRes     []service.Resource
	scanErr     error
	completeRes []service.Resource
	completeErr error

	loadedWith []string
	initCalls  int
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) OnLoad(env *service.Environment, otherServices []string) error {
	f.loadedWith = append([]string{}, otherServices...)
	return f.loadErr
}

func (f *fakeService) Initialize(env *service.Environment) error {
	f.initCalls++
	return f.initErr
}

func (f *fakeService) Transformers() []transform.Transformer { return f.xforms }

func (f *fakeService) BeginScanning(env *service.Environment) ([]service.Resource, error) {
	return f.scanRes, f.scanErr
}

func (f *fakeService) CompleteScan(layers service.ModuleLayerManager) ([]service.Resource, error) {
	return f.completeRes, f.completeErr
}

type fakeTransformer struct {
	name    string
	ttype   transform.TargetType
	targets []transform.Target
}

func (f *fakeTransformer) Name() string { return f.name }

func (f *fakeTransformer) TargetType() transform.TargetType { return f.ttype }

func (f *fakeTransformer) Targets() []transform.Target { return f.targets }

func (f *fakeTransformer) Transform(in []byte) ([]byte, error) { return in, nil }

type captureRegistry struct {
	entries []transform.Entry
}

func (c *captureRegistry) Add(target transform.Target, xform transform.Transformer, owner transform.Owner) {
	c.entries = append(c.entries, transform.Entry{Target: target, Transformer: xform, Owner: owner})
}

func TestTracker_LoadSuccess(t *testing.T) {
	svc := &fakeService{name: "s1"}
	tr := NewServiceTracker(svc)

	if err := tr.Load(service.NewEnvironment(), []string{"s2"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !tr.IsValid() {
		t.Fatal("expected valid tracker after successful load")
	}
	if tr.State() != StateLoadValid {
		t.Fatalf("want StateLoadValid, got %v", tr.State())
	}
	if len(svc.loadedWith) != 1 || svc.loadedWith[0] != "s2" {
		t.Fatalf("unexpected other-services set: %v", svc.loadedWith)
	}
}

func TestTracker_LoadIncompatibleIsConsumed(t *testing.T) {
	svc := &fakeService{name: "s1", loadErr: service.Incompatible("s1", "wrong runtime")}
	tr := NewServiceTracker(svc)

	if err := tr.Load(service.NewEnvironment(), nil); err != nil {
		t.Fatalf("incompatible environment must not propagate, got %v", err)
	}
	if tr.IsValid() {
		t.Fatal("expected invalid tracker")
	}
	if tr.State() != StateLoadInvalid {
		t.Fatalf("want StateLoadInvalid, got %v", tr.State())
	}
}

func TestTracker_LoadOtherFailurePropagates(t *testing.T) {
	boom := errors.New("boom")
	svc := &fakeService{name: "s1", loadErr: boom}
	tr := NewServiceTracker(svc)

	err := tr.Load(service.NewEnvironment(), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if tr.State() != StateUnloaded {
		t.Fatalf("want StateUnloaded after non-incompatible failure, got %v", tr.State())
	}
	if tr.IsValid() {
		t.Fatal("tracker must not be valid")
	}
}

func TestTracker_GatherNilTransformersFails(t *testing.T) {
	svc := &fakeService{name: "s1", xforms: nil}
	tr := NewServiceTracker(svc)
	reg := &captureRegistry{}

	err := tr.GatherTransformers(reg)
	if !errors.Is(err, ErrNilTransformers) {
		t.Fatalf("want ErrNilTransformers, got %v", err)
	}
	if len(reg.entries) != 0 {
		t.Fatalf("expected 0 entries, got %d", len(reg.entries))
	}
}

func TestTracker_GatherEmptyTargetsSkipsRule(t *testing.T) {
	xf := &fakeTransformer{name: "noop", ttype: transform.TargetTypeMethod}
	svc := &fakeService{name: "s1", xforms: []transform.Transformer{xf}}
	tr := NewServiceTracker(svc)
	reg := &captureRegistry{}

	if err := tr.GatherTransformers(reg); err != nil {
		t.Fatalf("GatherTransformers: %v", err)
	}
	if len(reg.entries) != 0 {
		t.Fatalf("expected 0 entries for empty target set, got %d", len(reg.entries))
	}
}

func TestTracker_GatherRegistersOneEntryPerTarget(t *testing.T) {
	xf := &fakeTransformer{
		name:  "widen",
		ttype: transform.TargetTypeMethod,
		targets: []transform.Target{
			transform.MethodTarget("ClassA", "fooMethod", "()V"),
			transform.MethodTarget("ClassA", "barMethod", "()V"),
		},
	}
	svc := &fakeService{name: "s1", xforms: []transform.Transformer{xf}}
	tr := NewServiceTracker(svc)
	reg := &captureRegistry{}

	if err := tr.GatherTransformers(reg); err != nil {
		t.Fatalf("GatherTransformers: %v", err)
	}
	if len(reg.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(reg.entries))
	}
	for i, e := range reg.entries {
		if e.Transformer != transform.Transformer(xf) {
			t.Fatalf("entry %d: wrong transformer", i)
		}
		if e.Owner != transform.Owner(svc) {
			t.Fatalf("entry %d: wrong owner", i)
		}
	}
	if reg.entries[0].Target.ElementName != "fooMethod" || reg.entries[1].Target.ElementName != "barMethod" {
		t.Fatalf("unexpected targets: %v, %v", reg.entries[0].Target, reg.entries[1].Target)
	}
}

func TestTracker_GatherMixedTargetTypesFails(t *testing.T) {
	xf := &fakeTransformer{
		name:  "mixed",
		ttype: transform.TargetTypeMethod,
		targets: []transform.Target{
			transform.MethodTarget("ClassA", "fooMethod", "()V"),
			transform.FieldTarget("ClassA", "count"),
		},
	}
	svc := &fakeService{name: "s1", xforms: []transform.Transformer{xf}}
	tr := NewServiceTracker(svc)
	reg := &captureRegistry{}

	err := tr.GatherTransformers(reg)
	if !errors.Is(err, ErrInvalidTargets) {
		t.Fatalf("want ErrInvalidTargets for targets spanning two types, got %v", err)
	}
	if len(reg.entries) != 0 {
		t.Fatalf("expected 0 entries from the bad rule, got %d", len(reg.entries))
	}
}

func TestTracker_GatherDeclaredTypeMismatchFails(t *testing.T) {
	xf := &fakeTransformer{
		name:    "wrongkind",
		ttype:   transform.TargetTypeClass,
		targets: []transform.Target{transform.FieldTarget("ClassA", "count")},
	}
	svc := &fakeService{name: "s1", xforms: []transform.Transformer{xf}}
	tr := NewServiceTracker(svc)

	err := tr.GatherTransformers(&captureRegistry{})
	if !errors.Is(err, ErrInvalidTargets) {
		t.Fatalf("want ErrInvalidTargets when the single target type differs from the declared one, got %v", err)
	}
}

func TestTracker_GatherMissingDeclaredTypeFails(t *testing.T) {
	xf := &fakeTransformer{
		name:    "untyped",
		targets: []transform.Target{transform.ClassTarget("ClassA")},
	}
	svc := &fakeService{name: "s1", xforms: []transform.Transformer{xf}}
	tr := NewServiceTracker(svc)

	err := tr.GatherTransformers(&captureRegistry{})
	if !errors.Is(err, transform.ErrNoTargetType) {
		t.Fatalf("want ErrNoTargetType for a missing declared target type, got %v", err)
	}
}

func TestTracker_GatherKeepsEarlierEntriesOnFailure(t *testing.T) {
	good := &fakeTransformer{
		name:    "good",
		ttype:   transform.TargetTypeClass,
		targets: []transform.Target{transform.ClassTarget("ClassA")},
	}
	bad := &fakeTransformer{
		name:    "bad",
		ttype:   transform.TargetTypeMethod,
		targets: []transform.Target{transform.FieldTarget("ClassB", "count")},
	}
	svc := &fakeService{name: "s1", xforms: []transform.Transformer{good, bad}}
	tr := NewServiceTracker(svc)
	reg := &captureRegistry{}

	if err := tr.GatherTransformers(reg); !errors.Is(err, ErrInvalidTargets) {
		t.Fatalf("want ErrInvalidTargets from the second rule, got %v", err)
	}
	// No rollback: the first rule's registration stays.
	if len(reg.entries) != 1 {
		t.Fatalf("expected the good rule's entry to remain, got %d entries", len(reg.entries))
	}
	if reg.entries[0].Transformer != transform.Transformer(good) {
		t.Fatal("remaining entry should belong to the good rule")
	}
}

func TestTracker_InitializeForwardsError(t *testing.T) {
	boom := errors.New("init failed")
	svc := &fakeService{name: "s1", initErr: boom}
	tr := NewServiceTracker(svc)

	if err := tr.Initialize(service.NewEnvironment()); !errors.Is(err, boom) {
		t.Fatalf("want init error, got %v", err)
	}
}

func TestTracker_ScansPassThrough(t *testing.T) {
	res := []service.Resource{{Layer: "plugin", Paths: []string{"a.jar"}}}
	done := []service.Resource{{Layer: "game", Paths: []string{"b.jar"}}}
	svc := &fakeService{name: "s1", scanRes: res, completeRes: done}
	tr := NewServiceTracker(svc)

	got, err := tr.RunScan(service.NewEnvironment())
	if err != nil {
		t.Fatalf("RunScan: %v", err)
	}
	if len(got) != 1 || got[0].Layer != "plugin" {
		t.Fatalf("unexpected scan result: %v", got)
	}

	got, err = tr.CompleteScan(service.LayerMap{})
	if err != nil {
		t.Fatalf("CompleteScan: %v", err)
	}
	if len(got) != 1 || got[0].Layer != "game" {
		t.Fatalf("unexpected complete-scan result: %v", got)
	}
}

func TestTracker_ServiceReturnsSameHandle(t *testing.T) {
	svc := &fakeService{name: "s1"}
	tr := NewServiceTracker(svc)

	for i := 0; i < 3; i++ {
		if tr.Service() != service.TransformationService(svc) {
			t.Fatal("Service must return the wrapped handle")
		}
	}
}
