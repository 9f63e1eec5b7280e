/*
Package reg reads and deletes Windows registry keys and values by driving
reg.exe and parsing its output.

# Quick Start

	c := reg.Default()
	err := c.Delete(ctx, `HKCU\Software\Vendor\App`, nil)

Delete a single value, or the unnamed value:

	err := c.DeleteValue(ctx, `HKCU\Software\Vendor\App`, types.Named("Version"), nil)
	err = c.DeleteValue(ctx, `HKCU\Software\Vendor\App`, types.DefaultValue, nil)

Empty a key but keep it:

	err := c.Clear(ctx, `HKCU\Software\Vendor\App`, nil)

# Registry Views

On 64-bit Windows, pass Bits to pin the 32- or 64-bit view:

	err := c.DeleteKey(ctx, `HKLM\SOFTWARE\Vendor`, &reg.Options{Bits: reg.Ptr(32)})

Process-wide defaults apply to every call that does not say otherwise:

	c.UpdateDefaults(func(d *reg.Defaults) { d.Bits = 64 })

# Locale

reg.exe prints localized messages. Before its first command a Client runs
two locale queries to learn how this machine's reg.exe says "not found"
and how it labels the unnamed value. Every command waits for the locale queries.

# Errors

Deleting something that does not exist succeeds. Everything else reg.exe
rejects comes back as a *types.Error:

	var regErr *types.Error
	if errors.As(err, &regErr) {
	    fmt.Println(regErr.Msg, regErr.Command)
	}

errors.Is(err, types.ErrExec) matches any reg.exe failure and
errors.Is(err, types.ErrSpawn) a failure to start reg.exe at all.

# Thread Safety

A Client is safe for concurrent use. Clear and ClearKeys issue their
deletions concurrently and do not roll back on failure.
*/
package reg
