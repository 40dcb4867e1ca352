package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"syscall"
)

// PathState tracks the fault state of a path for consistent error injection.
type PathState int

const (
	// PathNormal means no fault. This is the zero value, so untracked paths
	// are normal.
	PathNormal PathState = iota
	// PathIOError is sticky: the path has a "bad sector" and every operation
	// on it returns EIO.
	PathIOError
	// PathReadOnly is sticky for writes: mutations return EROFS, reads work.
	PathReadOnly
	// PathNoPermission makes every operation on the path return EACCES.
	PathNoPermission
)

// Chaos wraps an [FS] and injects failures for testing.
//
// Unlike a random fault injector, Chaos is fully deterministic: a test marks
// a path with a [PathState] (or queues a one-shot error with [Chaos.FailNext])
// and every matching operation fails the same way until the state is reset.
// States apply to the exact cleaned path only, not to its children.
//
// All errno-based errors are real OS errors (syscall.Errno wrapped in
// *fs.PathError) so code using errors.Is(err, fs.ErrPermission) behaves
// exactly as it would against the real filesystem. [IsInjected] tells them
// apart from genuine failures.
type Chaos struct {
	fs FS

	mu         sync.Mutex
	pathStates map[string]PathState
	pending    map[string]error // op -> one-shot error
	fails      map[string]int64 // op -> injected count
}

// NewChaos creates a new Chaos filesystem wrapping the given [FS].
func NewChaos(fsys FS) *Chaos {
	return &Chaos{
		fs:         fsys,
		pathStates: make(map[string]PathState),
		pending:    make(map[string]error),
		fails:      make(map[string]int64),
	}
}

// SetPathState marks path with a sticky fault state.
// Setting [PathNormal] clears it.
func (c *Chaos) SetPathState(path string, state PathState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	path = filepath.Clean(path)

	if state == PathNormal {
		delete(c.pathStates, path)
	} else {
		c.pathStates[path] = state
	}
}

// PathState returns the current fault state for a path.
func (c *Chaos) PathState(path string) PathState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pathStates[filepath.Clean(path)]
}

// ResetAllPathStates clears all fault states and pending one-shot errors.
func (c *Chaos) ResetAllPathStates() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pathStates = make(map[string]PathState)
	c.pending = make(map[string]error)
}

// FailNext makes the next call of the named operation fail with err,
// regardless of path. op is one of the operation names used in
// *fs.PathError values: "open", "create", "read", "write", "readdir", "mkdir",
// "stat", "access", "remove", "rename".
func (c *Chaos) FailNext(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending[op] = inject(err)
}

// Fails returns how many failures were injected for op.
func (c *Chaos) Fails(op string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fails[op]
}

// TotalFaults returns the total number of injected faults.
func (c *Chaos) TotalFaults() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, n := range c.fails {
		total += n
	}

	return total
}

// isWriteOp returns true if the operation modifies the filesystem.
func isWriteOp(op string) bool {
	switch op {
	case "write", "create", "mkdir", "remove", "rename":
		return true
	}

	return false
}

// pathError creates an *fs.PathError with the given operation, path, and errno.
// This matches what the real OS returns, so errors.Is() works correctly.
func pathError(op, path string, errno syscall.Errno) error {
	pe := &fs.PathError{Op: op, Path: path, Err: errno}
	markInjectedPathError(pe)

	return pe
}

// check returns the injected error for op on path, or nil to pass through.
func (c *Chaos) check(op string, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err, ok := c.pending[op]; ok {
		delete(c.pending, op)
		c.fails[op]++

		return err
	}

	var errno syscall.Errno

	switch c.pathStates[filepath.Clean(path)] {
	case PathIOError:
		errno = syscall.EIO
	case PathNoPermission:
		errno = syscall.EACCES
	case PathReadOnly:
		if !isWriteOp(op) {
			return nil
		}

		errno = syscall.EROFS
	default:
		return nil
	}

	c.fails[op]++

	return pathError(op, path, errno)
}

// --- File Operations ---

func (c *Chaos) Open(path string) (File, error) {
	if err := c.check("open", path); err != nil {
		return nil, err
	}

	f, err := c.fs.Open(path)
	if err != nil {
		return nil, err
	}

	return &chaosFile{f: f, chaos: c, path: path}, nil
}

func (c *Chaos) Create(path string) (File, error) {
	if err := c.check("create", path); err != nil {
		return nil, err
	}

	f, err := c.fs.Create(path)
	if err != nil {
		return nil, err
	}

	return &chaosFile{f: f, chaos: c, path: path}, nil
}

func (c *Chaos) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	op := "open"
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		op = "create"
	}

	if err := c.check(op, path); err != nil {
		return nil, err
	}

	f, err := c.fs.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}

	return &chaosFile{f: f, chaos: c, path: path}, nil
}

// --- Convenience Methods ---

func (c *Chaos) ReadFile(path string) ([]byte, error) {
	if err := c.check("open", path); err != nil {
		return nil, err
	}

	return c.fs.ReadFile(path)
}

func (c *Chaos) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := c.check("write", path); err != nil {
		return err
	}

	return c.fs.WriteFileAtomic(path, data, perm)
}

// --- Directory Operations ---

func (c *Chaos) ReadDir(path string) ([]os.DirEntry, error) {
	if err := c.check("readdir", path); err != nil {
		return nil, err
	}

	return c.fs.ReadDir(path)
}

func (c *Chaos) MkdirAll(path string, perm os.FileMode) error {
	if err := c.check("mkdir", path); err != nil {
		return err
	}

	return c.fs.MkdirAll(path, perm)
}

// --- Metadata ---

func (c *Chaos) Stat(path string) (os.FileInfo, error) {
	if err := c.check("stat", path); err != nil {
		return nil, err
	}

	return c.fs.Stat(path)
}

func (c *Chaos) Exists(path string) (bool, error) {
	if err := c.check("stat", path); err != nil {
		return false, err
	}

	return c.fs.Exists(path)
}

func (c *Chaos) Access(path string, mode uint32) error {
	if err := c.check("access", path); err != nil {
		return err
	}

	return c.fs.Access(path, mode)
}

// --- Mutations ---

func (c *Chaos) Remove(path string) error {
	if err := c.check("remove", path); err != nil {
		return err
	}

	return c.fs.Remove(path)
}

func (c *Chaos) RemoveAll(path string) error {
	if err := c.check("remove", path); err != nil {
		return err
	}

	return c.fs.RemoveAll(path)
}

func (c *Chaos) Rename(oldpath, newpath string) error {
	if err := c.check("rename", oldpath); err != nil {
		return err
	}

	if err := c.check("rename", newpath); err != nil {
		return err
	}

	return c.fs.Rename(oldpath, newpath)
}

// --- chaosFile wraps a File and injects faults on Read/Write ---

type chaosFile struct {
	f     File
	chaos *Chaos
	path  string
}

func (cf *chaosFile) Read(p []byte) (int, error) {
	if err := cf.chaos.check("read", cf.path); err != nil {
		return 0, err
	}

	return cf.f.Read(p)
}

func (cf *chaosFile) Write(p []byte) (int, error) {
	if err := cf.chaos.check("write", cf.path); err != nil {
		return 0, err
	}

	return cf.f.Write(p)
}

func (cf *chaosFile) Close() error {
	return cf.f.Close()
}

func (cf *chaosFile) Seek(offset int64, whence int) (int64, error) {
	return cf.f.Seek(offset, whence)
}

func (cf *chaosFile) Stat() (os.FileInfo, error) {
	return cf.f.Stat()
}

func (cf *chaosFile) Sync() error {
	return cf.f.Sync()
}

// Compile-time interface check.
var _ FS = (*Chaos)(nil)
