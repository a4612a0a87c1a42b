//go:build windows

package probe

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"edgelink/internal/domain"
)

// withApartment runs fn inside a single-threaded COM apartment pinned to one
// OS thread. Every call gets a fresh apartment so no proxy outlives it.
func withApartment(fn func() error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		return fmt.Errorf("initialize COM: %w", err)
	}
	defer ole.CoUninitialize()

	return fn()
}

// application resolves the running Solid Edge instance. Caller releases.
func (c *Client) application() (*ole.IDispatch, error) {
	unknown, err := oleutil.GetActiveObject(c.progID)
	if err != nil {
		return nil, Unreachable(AppName, err)
	}
	defer unknown.Release()

	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, Unreachable(AppName, err)
	}
	return app, nil
}

// ActiveDocument returns the document currently active in Solid Edge.
func (c *Client) ActiveDocument(ctx context.Context) (domain.DocumentInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.DocumentInfo{}, err
	}

	var doc domain.DocumentInfo
	err := withApartment(func() error {
		app, err := c.application()
		if err != nil {
			return err
		}
		defer app.Release()

		active, err := oleutil.GetProperty(app, "ActiveDocument")
		if err != nil {
			return NoActiveDocument(AppName, err)
		}
		defer active.Clear()

		dispatch := active.ToIDispatch()
		if dispatch == nil {
			return NoActiveDocument(AppName, nil)
		}

		doc, err = readDocumentInfo(dispatch)
		if err != nil {
			return err
		}
		doc.Active = true
		return nil
	})
	if err != nil {
		return domain.DocumentInfo{}, err
	}
	return doc, nil
}

// OpenDocuments lists all open documents and reports the active one by name.
func (c *Client) OpenDocuments(ctx context.Context) ([]domain.DocumentInfo, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	var docs []domain.DocumentInfo
	var activeName string
	err := withApartment(func() error {
		app, err := c.application()
		if err != nil {
			return err
		}
		defer app.Release()

		if active, err := oleutil.GetProperty(app, "ActiveDocument"); err == nil {
			if dispatch := active.ToIDispatch(); dispatch != nil {
				if name, err := stringProperty(dispatch, "Name"); err == nil {
					activeName = name
				}
			}
			active.Clear()
		}

		collection, err := oleutil.GetProperty(app, "Documents")
		if err != nil {
			// A running instance without a Documents collection is treated
			// as lost mid-call.
			return Unreachable(AppName, err)
		}
		defer collection.Clear()

		documents := collection.ToIDispatch()
		if documents == nil {
			return Unreachable(AppName, nil)
		}

		count, err := intProperty(documents, "Count")
		if err != nil {
			return Unreachable(AppName, err)
		}

		// Solid Edge collections are 1-based.
		for i := 1; i <= count; i++ {
			item, err := oleutil.CallMethod(documents, "Item", i)
			if err != nil {
				return Unreachable(AppName, err)
			}

			dispatch := item.ToIDispatch()
			if dispatch == nil {
				item.Clear()
				continue
			}

			doc, err := readDocumentInfo(dispatch)
			item.Clear()
			if err != nil {
				return err
			}

			doc.Active = activeName != "" && doc.Name == activeName
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return docs, activeName, nil
}

// Activate makes the document with the given full name the active document.
func (c *Client) Activate(ctx context.Context, fullName, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return withApartment(func() error {
		app, err := c.application()
		if err != nil {
			return err
		}
		defer app.Release()

		doc, err := c.findDocument(app, fullName, name)
		if err != nil {
			return err
		}
		defer doc.Release()

		if _, err := oleutil.CallMethod(doc, "Activate"); err != nil {
			return Unreachable(AppName, err)
		}
		return nil
	})
}

// CustomProperties reads the Custom property set of a draft document.
func (c *Client) CustomProperties(ctx context.Context, fullName, name string) ([]domain.CustomProperty, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var props []domain.CustomProperty
	err := withApartment(func() error {
		app, err := c.application()
		if err != nil {
			return err
		}
		defer app.Release()

		doc, err := c.findDocument(app, fullName, name)
		if err != nil {
			return err
		}
		defer doc.Release()

		custom, err := customPropertySet(doc)
		if err != nil {
			return err
		}
		defer custom.Release()

		count, err := intProperty(custom, "Count")
		if err != nil {
			return Unreachable(AppName, err)
		}

		for i := 1; i <= count; i++ {
			item, err := oleutil.CallMethod(custom, "Item", i)
			if err != nil {
				return Unreachable(AppName, err)
			}

			dispatch := item.ToIDispatch()
			if dispatch == nil {
				item.Clear()
				continue
			}

			propName, nameErr := stringProperty(dispatch, "Name")
			propValue, valueErr := stringProperty(dispatch, "Value")
			item.Clear()
			if nameErr != nil || valueErr != nil {
				continue
			}

			props = append(props, domain.CustomProperty{Name: propName, Value: propValue})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return props, nil
}

// SaveCustomProperties writes the given properties into the Custom property
// set, updating existing entries and adding missing ones.
func (c *Client) SaveCustomProperties(ctx context.Context, fullName, name string, props []domain.CustomProperty) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return withApartment(func() error {
		app, err := c.application()
		if err != nil {
			return err
		}
		defer app.Release()

		doc, err := c.findDocument(app, fullName, name)
		if err != nil {
			return err
		}
		defer doc.Release()

		custom, err := customPropertySet(doc)
		if err != nil {
			return err
		}
		defer custom.Release()

		for _, prop := range props {
			if strings.TrimSpace(prop.Name) == "" {
				continue
			}
			if err := putCustomProperty(custom, prop); err != nil {
				return err
			}
		}

		if _, err := oleutil.CallMethod(custom, "Save"); err != nil {
			return Unreachable(AppName, err)
		}
		return nil
	})
}

// Disconnect releases lingering automation references by cycling the
// apartment. Solid Edge keeps documents locked while COM proxies survive.
func (c *Client) Disconnect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return withApartment(func() error {
		return nil
	})
}

// findDocument locates an open document by full name, falling back to the
// short name when the full path does not match.
func (c *Client) findDocument(app *ole.IDispatch, fullName, name string) (*ole.IDispatch, error) {
	collection, err := oleutil.GetProperty(app, "Documents")
	if err != nil {
		return nil, Unreachable(AppName, err)
	}
	defer collection.Clear()

	documents := collection.ToIDispatch()
	if documents == nil {
		return nil, Unreachable(AppName, nil)
	}

	count, err := intProperty(documents, "Count")
	if err != nil {
		return nil, Unreachable(AppName, err)
	}

	for i := 1; i <= count; i++ {
		item, err := oleutil.CallMethod(documents, "Item", i)
		if err != nil {
			return nil, Unreachable(AppName, err)
		}

		dispatch := item.ToIDispatch()
		if dispatch == nil {
			item.Clear()
			continue
		}

		docFullName, fullErr := stringProperty(dispatch, "FullName")
		docName, nameErr := stringProperty(dispatch, "Name")
		if fullErr == nil && strings.EqualFold(docFullName, fullName) {
			dispatch.AddRef()
			item.Clear()
			return dispatch, nil
		}
		if nameErr == nil && fullName == "" && strings.EqualFold(docName, name) {
			dispatch.AddRef()
			item.Clear()
			return dispatch, nil
		}
		item.Clear()
	}

	return nil, NoActiveDocument(AppName, fmt.Errorf("document not open: %s", fullName))
}

// customPropertySet returns the document's Custom property set. Caller releases.
func customPropertySet(doc *ole.IDispatch) (*ole.IDispatch, error) {
	sets, err := oleutil.GetProperty(doc, "Properties")
	if err != nil {
		return nil, Unreachable(AppName, err)
	}
	defer sets.Clear()

	setsDispatch := sets.ToIDispatch()
	if setsDispatch == nil {
		return nil, Unreachable(AppName, nil)
	}

	custom, err := oleutil.CallMethod(setsDispatch, "Item", "Custom")
	if err != nil {
		return nil, Unreachable(AppName, err)
	}

	dispatch := custom.ToIDispatch()
	if dispatch == nil {
		custom.Clear()
		return nil, Unreachable(AppName, nil)
	}
	dispatch.AddRef()
	custom.Clear()
	return dispatch, nil
}

// putCustomProperty updates an existing property or adds a new one.
func putCustomProperty(custom *ole.IDispatch, prop domain.CustomProperty) error {
	item, err := oleutil.CallMethod(custom, "Item", prop.Name)
	if err == nil {
		dispatch := item.ToIDispatch()
		if dispatch != nil {
			_, putErr := oleutil.PutProperty(dispatch, "Value", prop.Value)
			item.Clear()
			if putErr != nil {
				return Unreachable(AppName, putErr)
			}
			return nil
		}
		item.Clear()
	}

	if _, err := oleutil.CallMethod(custom, "Add", prop.Name, prop.Value); err != nil {
		return Unreachable(AppName, err)
	}
	return nil
}

// readDocumentInfo extracts name, path, and display type from a document.
func readDocumentInfo(doc *ole.IDispatch) (domain.DocumentInfo, error) {
	name, err := stringProperty(doc, "Name")
	if err != nil {
		return domain.DocumentInfo{}, Unreachable(AppName, err)
	}

	// FullName is unavailable on never-saved documents; fall back to Name.
	fullName, err := stringProperty(doc, "FullName")
	if err != nil || fullName == "" {
		fullName = name
	}

	return domain.DocumentInfo{
		Name:     name,
		FullName: fullName,
		Type:     domain.DocumentTypeFromPath(fullName),
	}, nil
}

// stringProperty reads one string-valued automation property.
func stringProperty(dispatch *ole.IDispatch, name string) (string, error) {
	v, err := oleutil.GetProperty(dispatch, name)
	if err != nil {
		return "", err
	}
	defer v.Clear()
	return strings.TrimSpace(v.ToString()), nil
}

// intProperty reads one integer-valued automation property.
func intProperty(dispatch *ole.IDispatch, name string) (int, error) {
	v, err := oleutil.GetProperty(dispatch, name)
	if err != nil {
		return 0, err
	}
	defer v.Clear()
	return int(v.Val), nil
}
