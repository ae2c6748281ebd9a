// Package windows backs the scripting interfaces with the SAP GUI COM
// automation objects (SapGuiAuto / GuiApplication) via OLE. On other
// platforms the package compiles as a no-op stub and nothing registers,
// leaving scripting.Attach to report ErrUnsupported.
package windows
