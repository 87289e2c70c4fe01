package fiber

import (
	"strings"
	"testing"

	"github.com/viridian-dev/viridian/pkg/hook"
	"github.com/viridian-dev/viridian/pkg/vdom"
)

// build creates root -> [func -> [div, span], p] with manual links.
func build(t *testing.T) (*Tree, map[string]ID) {
	t.Helper()
	comp := vdom.Func("Pair", func(*hook.Scope, vdom.Props) any { return nil })

	tr := NewTree(1, "container", nil, NoRef)
	ids := map[string]ID{}
	ids["func"] = tr.Add(&Fiber{Type: vdom.Type{Kind: vdom.KindFunc, Component: comp}}, RootID)
	ids["div"] = tr.Add(&Fiber{Type: vdom.Div().Type, Node: "div-node"}, ids["func"])
	ids["span"] = tr.Add(&Fiber{Type: vdom.Span().Type, Node: "span-node"}, ids["func"])
	ids["p"] = tr.Add(&Fiber{Type: vdom.P().Type, Node: "p-node"}, RootID)

	tr.Root().Child = ids["func"]
	tr.Get(ids["func"]).Sibling = ids["p"]
	tr.Get(ids["func"]).Child = ids["div"]
	tr.Get(ids["div"]).Sibling = ids["span"]
	return tr, ids
}

func TestNextIsDepthFirst(t *testing.T) {
	tr, ids := build(t)
	var order []ID
	for id := RootID; id.Valid(); id = tr.Next(id) {
		order = append(order, id)
	}
	want := []ID{RootID, ids["func"], ids["div"], ids["span"], ids["p"]}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %d, want %d", i, order[i], want[i])
		}
	}
}

func TestHostParentSkipsFunctionFibers(t *testing.T) {
	tr, ids := build(t)
	if p := tr.HostParent(ids["div"]); p != tr.Root() {
		t.Errorf("HostParent(div) = %v, want root", p)
	}
	if p := tr.HostParent(RootID); p != nil {
		t.Errorf("HostParent(root) = %v, want nil", p)
	}
}

func TestTopHostNodes(t *testing.T) {
	tr, ids := build(t)
	got := tr.TopHostNodes(ids["func"])
	if len(got) != 2 || got[0] != "div-node" || got[1] != "span-node" {
		t.Errorf("TopHostNodes(func) = %v, want [div-node span-node]", got)
	}
	if got := tr.TopHostNodes(ids["p"]); len(got) != 1 || got[0] != "p-node" {
		t.Errorf("TopHostNodes(p) = %v", got)
	}
}

func TestResolveChecksGeneration(t *testing.T) {
	tr, ids := build(t)
	if f := tr.Resolve(tr.Ref(ids["p"])); f == nil || f.Node != "p-node" {
		t.Errorf("Resolve(own ref) = %v", f)
	}
	if f := tr.Resolve(Ref{Gen: 2, ID: ids["p"]}); f != nil {
		t.Errorf("Resolve(stale ref) = %v, want nil", f)
	}
	if f := tr.Resolve(NoRef); f != nil {
		t.Errorf("Resolve(NoRef) = %v, want nil", f)
	}
	var nilTree *Tree
	if f := nilTree.Resolve(Ref{Gen: 1}); f != nil {
		t.Error("nil tree resolved a ref")
	}
}

func TestString(t *testing.T) {
	tr, _ := build(t)
	got := tr.String()
	for _, want := range []string{"#root\n", "  Pair\n", "    div\n", "    span\n", "  p\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() missing %q:\n%s", want, got)
		}
	}
}
