package filestore

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"os/user"
	"path"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

func defaultPath() string {
	return path.Join(homeDir(), ".battlesnake/highscore.json")
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// FileStore keeps the scores in a single JSON object on disk, rewritten on every
// Set.
type FileStore struct {
	path string
	lock sync.Mutex
}

// NewFileStore returns a file based store. An empty path uses
// ~/.battlesnake/highscore.json.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = defaultPath()
	}
	return &FileStore{path: path}
}

// Path returns the file the scores are kept in.
func (fs *FileStore) Path() string {
	return fs.path
}

// Get returns the score stored under key.
func (fs *FileStore) Get(ctx context.Context, key string) (int, bool, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	scores, err := fs.read()
	if err != nil {
		return 0, false, err
	}
	v, ok := scores[key]
	return v, ok, nil
}

// Set stores value under key.
func (fs *FileStore) Set(ctx context.Context, key string, value int) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	scores, err := fs.read()
	if err != nil {
		return err
	}
	scores[key] = value
	return fs.write(scores)
}

func (fs *FileStore) read() (map[string]int, error) {
	scores := map[string]int{}
	data, err := ioutil.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return scores, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", fs.path)
	}
	if len(data) == 0 {
		return scores, nil
	}
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, errors.Wrapf(err, "corrupt high score file %s", fs.path)
	}
	return scores, nil
}

// write replaces the file through a rename so a crash never leaves it half
// written.
func (fs *FileStore) write(scores map[string]int) error {
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0775); err != nil {
		return errors.Wrapf(err, "unable to create %s", dir)
	}
	data, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := ioutil.TempFile(dir, ".highscore-*")
	if err != nil {
		return errors.Wrap(err, "unable to create temp file")
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "unable to write scores")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return errors.Wrap(os.Rename(tmp.Name(), fs.path), "unable to replace score file")
}
