//go:build windows

package windows

import (
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"sapconnect/internal/scripting"
)

func init() {
	scripting.AttachFunc = attach
}

// attach binds to the scripting engine of a running SAP Logon via the
// running object table (the COM equivalent of GetObject("SAPGUI")).
func attach() (scripting.Engine, error) {
	// CoInitialize fails with S_FALSE when the thread is already
	// initialized; that is fine for our purposes.
	_ = ole.CoInitialize(0)

	unknown, err := oleutil.GetActiveObject("SAPGUI")
	if err != nil {
		return nil, fmt.Errorf("SAP Logon not found in running object table: %w", err)
	}
	auto, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		unknown.Release()
		return nil, fmt.Errorf("SAPGUI object has no IDispatch: %w", err)
	}
	app, err := oleutil.CallMethod(auto, "GetScriptingEngine")
	if err != nil {
		auto.Release()
		return nil, fmt.Errorf("GetScriptingEngine failed (is scripting enabled in SAP GUI options?): %w", err)
	}
	return &engine{app: app.ToIDispatch()}, nil
}

// engine wraps the GuiApplication dispatch object.
type engine struct {
	app *ole.IDispatch
}

func (e *engine) ConnectionCount() int {
	return childCount(e.app)
}

func (e *engine) Connection(index int) (scripting.Connection, error) {
	disp, err := childAt(e.app, index)
	if err != nil {
		return nil, fmt.Errorf("connection %d: %w", index, err)
	}
	return &connection{disp: disp}, nil
}

func (e *engine) OpenConnection(description string, synchronous bool) (scripting.Connection, error) {
	v, err := oleutil.CallMethod(e.app, "OpenConnection", description, synchronous)
	if err != nil {
		return nil, fmt.Errorf("OpenConnection(%q): %w", description, err)
	}
	return &connection{disp: v.ToIDispatch()}, nil
}

// connection wraps a GuiConnection dispatch object.
type connection struct {
	disp *ole.IDispatch
}

func (c *connection) SessionCount() int {
	return childCount(c.disp)
}

func (c *connection) Session(index int) (scripting.Session, error) {
	disp, err := childAt(c.disp, index)
	if err != nil {
		return nil, fmt.Errorf("session %d: %w", index, err)
	}
	return &session{disp: disp}, nil
}

// session wraps a GuiSession dispatch object.
type session struct {
	disp *ole.IDispatch
}

func (s *session) FindByID(id string) (scripting.Element, bool) {
	// FindById raises for unknown paths; absence is an expected outcome
	// when probing transient screens, so the error folds into ok=false.
	v, err := oleutil.CallMethod(s.disp, "FindById", id)
	if err != nil {
		return nil, false
	}
	disp := v.ToIDispatch()
	if disp == nil {
		return nil, false
	}
	return &element{disp: disp}, true
}

func (s *session) Info() (scripting.SessionInfo, error) {
	v, err := oleutil.GetProperty(s.disp, "Info")
	if err != nil {
		return scripting.SessionInfo{}, fmt.Errorf("session info: %w", err)
	}
	info := v.ToIDispatch()
	defer info.Release()

	out := scripting.SessionInfo{
		SystemName:  stringProp(info, "SystemName"),
		Client:      stringProp(info, "Client"),
		User:        stringProp(info, "User"),
		Transaction: stringProp(info, "Transaction"),
	}
	if rt, err := oleutil.GetProperty(info, "ResponseTime"); err == nil {
		out.ResponseTimeMS = int(rt.Val)
		rt.Clear()
	}
	return out, nil
}

func (s *session) Statusbar() (scripting.StatusMessage, bool) {
	sbar, ok := s.FindByID("wnd[0]/sbar")
	if !ok {
		return scripting.StatusMessage{}, false
	}
	el := sbar.(*element)
	kind, err := oleutil.GetProperty(el.disp, "MessageType")
	if err != nil {
		return scripting.StatusMessage{}, false
	}
	defer kind.Clear()
	return scripting.StatusMessage{
		Severity: kind.ToString(),
		Text:     el.Text(),
	}, true
}

// element wraps any GuiVComponent dispatch object.
type element struct {
	disp *ole.IDispatch
}

func (el *element) Text() string {
	return stringProp(el.disp, "Text")
}

func (el *element) SetText(value string) error {
	if _, err := oleutil.PutProperty(el.disp, "Text", value); err != nil {
		return fmt.Errorf("set text: %w", err)
	}
	return nil
}

func (el *element) Changeable() bool {
	v, err := oleutil.GetProperty(el.disp, "Changeable")
	if err != nil {
		return false
	}
	defer v.Clear()
	b, ok := v.Value().(bool)
	return ok && b
}

func (el *element) Press() error {
	if _, err := oleutil.CallMethod(el.disp, "Press"); err != nil {
		return fmt.Errorf("press: %w", err)
	}
	return nil
}

func (el *element) Select() error {
	if _, err := oleutil.CallMethod(el.disp, "Select"); err != nil {
		return fmt.Errorf("select: %w", err)
	}
	return nil
}

func (el *element) SendVKey(code int) error {
	if _, err := oleutil.CallMethod(el.disp, "SendVKey", code); err != nil {
		return fmt.Errorf("sendVKey %d: %w", code, err)
	}
	return nil
}

// childCount reads the Count of a dispatch object's Children collection.
// Read failures report zero; callers treat the collection as empty.
func childCount(disp *ole.IDispatch) int {
	children, err := oleutil.GetProperty(disp, "Children")
	if err != nil {
		return 0
	}
	coll := children.ToIDispatch()
	defer coll.Release()
	count, err := oleutil.GetProperty(coll, "Count")
	if err != nil {
		return 0
	}
	defer count.Clear()
	return int(count.Val)
}

// childAt resolves Children(index) on a dispatch object.
func childAt(disp *ole.IDispatch, index int) (*ole.IDispatch, error) {
	children, err := oleutil.GetProperty(disp, "Children")
	if err != nil {
		return nil, err
	}
	coll := children.ToIDispatch()
	defer coll.Release()
	item, err := oleutil.CallMethod(coll, "Item", index)
	if err != nil {
		return nil, err
	}
	return item.ToIDispatch(), nil
}

func stringProp(disp *ole.IDispatch, name string) string {
	v, err := oleutil.GetProperty(disp, name)
	if err != nil {
		return ""
	}
	defer v.Clear()
	return v.ToString()
}
