package plugin

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubPlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *stubPlugin) Name() string { return p.name }

func (p *stubPlugin) Initialize(EditorAPI) error {
	*p.log = append(*p.log, "init "+p.name)
	return p.initErr
}

func (p *stubPlugin) Shutdown() error {
	*p.log = append(*p.log, "shutdown "+p.name)
	return nil
}

func TestManagerLifecycle(t *testing.T) {
	var log []string
	m := NewManager()
	for _, p := range []*stubPlugin{
		{name: "b", log: &log},
		{name: "a", initErr: errors.New("boom"), log: &log},
		{name: "c", log: &log},
	} {
		if err := m.Register(p); err != nil {
			t.Fatalf("Register(%s): %v", p.name, err)
		}
	}
	if err := m.Register(&stubPlugin{name: "b", log: &log}); err == nil {
		t.Errorf("duplicate name accepted")
	}
	if err := m.Register(&stubPlugin{log: &log}); err == nil {
		t.Errorf("empty name accepted")
	}

	err := m.InitializePlugins(nil)
	if err == nil || err.Error() != "plugin a: boom" {
		t.Errorf("InitializePlugins error = %v", err)
	}
	m.ShutdownPlugins()

	want := []string{"init b", "init a", "init c", "shutdown b", "shutdown a", "shutdown c"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
	if _, ok := m.GetPlugin("c"); !ok {
		t.Errorf("GetPlugin(c) failed")
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, m.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}
