// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghostscript

// cLong matches C long, which is 32 bits on Windows in both ABIs.
type cLong = int32
