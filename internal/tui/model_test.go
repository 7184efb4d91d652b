package tui

import (
	"context"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Bama-S/capec-rel/internal/ingest"
	"github.com/Bama-S/capec-rel/internal/models"
	"github.com/Bama-S/capec-rel/internal/service"
)

const table = `id,relation_1,relation_2
2,childof 1,peerof 3
`

func newTestModel(t *testing.T) Model {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	mg, _, err := ingest.LoadReader(context.Background(), strings.NewReader(table), models.ModeLenient, log)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	svc, err := service.NewQueryService(mg, log)
	if err != nil {
		t.Fatalf("NewQueryService: %v", err)
	}

	return New(svc)
}

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func TestEnterAnalyzesTypedNode(t *testing.T) {
	t.Parallel()

	m := typeText(newTestModel(t), "2")
	m, _ = press(m, tea.KeyEnter)

	if m.errMsg != "" {
		t.Fatalf("unexpected error %q", m.errMsg)
	}
	if m.analysis == nil || m.analysis.Node != 2 {
		t.Fatalf("expected analysis of node 2, got %+v", m.analysis)
	}
	if !reflect.DeepEqual(m.analysis.Parents, []models.NodeID{1}) {
		t.Errorf("parents = %v, want [1]", m.analysis.Parents)
	}

	view := m.View()
	for _, want := range []string{"CAPEC ID Analysis", "Related Nodes for ID: 2", "Parents:", "Peers:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestNonNumericInputShowsError(t *testing.T) {
	t.Parallel()

	m := typeText(newTestModel(t), "2")
	m, _ = press(m, tea.KeyEnter)

	m, _ = press(m, tea.KeyBackspace)
	m = typeText(m, "abc")
	m, _ = press(m, tea.KeyEnter)

	if m.errMsg == "" {
		t.Fatal("expected an error message")
	}
	if m.analysis == nil || m.analysis.Node != 2 {
		t.Error("previous result should be kept")
	}
	if !strings.Contains(m.View(), "is not a node id") {
		t.Error("view should show the error")
	}
}

func TestUnknownNodeIsNotAnError(t *testing.T) {
	t.Parallel()

	m := typeText(newTestModel(t), "404")
	m, _ = press(m, tea.KeyEnter)

	if m.errMsg != "" {
		t.Fatalf("unexpected error %q", m.errMsg)
	}
	if m.analysis == nil || m.analysis.Exists {
		t.Fatalf("expected a non-existent analysis, got %+v", m.analysis)
	}
	if !strings.Contains(m.View(), "not present in the loaded relations") {
		t.Error("view should note the unknown node")
	}
}

func TestQuitKeys(t *testing.T) {
	t.Parallel()

	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := press(newTestModel(t), k)
		if cmd == nil {
			t.Fatalf("%v: expected a quit command", k)
		}

		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: expected tea.QuitMsg", k)
		}
	}
}
