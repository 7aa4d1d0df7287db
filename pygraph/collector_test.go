package pygraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyinspect/events"
	"github.com/viant/pyinspect/pygraph"
)

// TestCollector_NestedScopes drives a Collector directly with the callback
// sequence a walker would issue for:
//
//	class Outer:        # level=0
//	    def method(self):   # level=1
//	        self.x = 1       # level=1 (shares method's level, members don't push)
//	    class Inner:         # level=1 (sibling of method)
//	        pass
//	y = 2                # level=-1 (module's own level)
//
// and checks that level-based popping attaches each event to the right
// lexical container even though no "end of scope" event ever fires.
func TestCollector_NestedScopes(t *testing.T) {
	c := pygraph.NewCollector("nested.py")

	c.OnClass("Outer", events.Position{Line: 1}, 1, 0, 1, 10, 0)
	c.OnFunction("method", events.Position{Line: 2}, 2, 4, 2, 20, 1, false, "")
	c.OnInstanceAttribute("x", events.Position{Line: 3}, 1)
	c.OnClass("Inner", events.Position{Line: 4}, 4, 4, 4, 15, 1)
	c.OnGlobal("y", events.Position{Line: 6}, -1)

	mod := c.Module()
	require.Len(t, mod.Classes, 1)
	outer := mod.Classes[0]
	assert.Equal(t, "Outer", outer.Name)

	require.Len(t, outer.Functions, 1)
	method := outer.Functions[0]
	assert.Equal(t, "method", method.Name)
	require.Len(t, method.InstanceAttributes, 1)
	assert.Equal(t, "x", method.InstanceAttributes[0].Name)

	require.Len(t, outer.Classes, 1)
	assert.Equal(t, "Inner", outer.Classes[0].Name)

	require.Len(t, mod.Assignments, 1)
	assert.Equal(t, "y", mod.Assignments[0].Name)
}

// TestCollector_ClassAttributeAfterMethod pins the case that only works
// once member events also pop stale frames: a class attribute declared
// after a method still belongs to the class, not to the method's frame,
// even though no event marks the method's body as closed.
//
//	class Outer:
//	    def method(self):
//	        pass
//	    y = 5
func TestCollector_ClassAttributeAfterMethod(t *testing.T) {
	c := pygraph.NewCollector("attr.py")

	c.OnClass("Outer", events.Position{Line: 1}, 1, 0, 1, 10, 0)
	c.OnFunction("method", events.Position{Line: 2}, 2, 4, 2, 20, 1, false, "")
	c.OnClassAttribute("y", events.Position{Line: 4}, 0)

	mod := c.Module()
	require.Len(t, mod.Classes, 1)
	outer := mod.Classes[0]
	require.Len(t, outer.Functions, 1)
	assert.Empty(t, outer.Functions[0].InstanceAttributes)
	require.Len(t, outer.Attributes, 1)
	assert.Equal(t, "y", outer.Attributes[0].Name)
}

func TestCollector_Import(t *testing.T) {
	c := pygraph.NewCollector("imp.py")
	c.OnImport("os.path", events.Position{Line: 1})
	c.OnAs("p")
	c.OnImport("collections", events.Position{Line: 2})
	c.OnWhat("OrderedDict", events.Position{Line: 2})
	c.OnAs("OD")
	c.OnWhat("defaultdict", events.Position{Line: 2})

	mod := c.Module()
	require.Len(t, mod.Imports, 2)

	assert.Equal(t, "os.path", mod.Imports[0].Name)
	assert.Equal(t, "p", mod.Imports[0].As)

	assert.Equal(t, "collections", mod.Imports[1].Name)
	require.Len(t, mod.Imports[1].Whats, 2)
	assert.Equal(t, "OrderedDict", mod.Imports[1].Whats[0].Name)
	assert.Equal(t, "OD", mod.Imports[1].Whats[0].As)
	assert.Equal(t, "defaultdict", mod.Imports[1].Whats[1].Name)
	assert.Empty(t, mod.Imports[1].Whats[1].As)
}

func TestCollector_BaseClassKeyword(t *testing.T) {
	c := pygraph.NewCollector("meta.py")
	c.OnClass("Widget", events.Position{Line: 1}, 1, 0, 1, 30, 0)
	c.OnBaseClass("Base")
	c.OnBaseClass("metaclass=ABCMeta")

	mod := c.Module()
	require.Len(t, mod.Classes, 1)
	bases := mod.Classes[0].BaseClass
	require.Len(t, bases, 2)

	assert.Equal(t, "Base", bases[0].Expr)
	assert.False(t, bases[0].IsKeyword)

	assert.Equal(t, "metaclass=ABCMeta", bases[1].Expr)
	assert.True(t, bases[1].IsKeyword)
	assert.Equal(t, "metaclass", bases[1].KeywordName)
}

func TestCollector_DecoratorsAttachToNextDefinition(t *testing.T) {
	c := pygraph.NewCollector("dec.py")
	c.OnDecorator("staticmethod", events.Position{Line: 1})
	c.OnDecorator("cache", events.Position{Line: 2})
	c.OnDecoratorArgument("maxsize=128")
	c.OnFunction("compute", events.Position{Line: 3}, 3, 0, 3, 20, 0, false, "")

	mod := c.Module()
	require.Len(t, mod.Functions, 1)
	decorators := mod.Functions[0].Decorators
	require.Len(t, decorators, 2)
	assert.Equal(t, "staticmethod", decorators[0].Name)
	assert.Equal(t, "cache", decorators[1].Name)
	assert.Equal(t, []string{"maxsize=128"}, decorators[1].Arguments)

	// A second definition without decorators gets none.
	c.OnFunction("plain", events.Position{Line: 5}, 5, 0, 5, 15, 0, false, "")
	assert.Empty(t, mod.Functions[1].Decorators)
}

func TestCollector_Errors(t *testing.T) {
	c := pygraph.NewCollector("bad.py")
	c.OnError("3:1 invalid syntax")
	c.OnLexerError("5:1 EOF in multi-line string")

	mod := c.Module()
	require.Len(t, mod.Errors, 2)
	assert.False(t, mod.Errors[0].Lexer)
	assert.True(t, mod.Errors[1].Lexer)
}

var _ events.Sink = (*pygraph.Collector)(nil)
