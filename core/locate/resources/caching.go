package resources

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/glyphr/core"
	"github.com/npillmayer/schuko"
)

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key, taken as `app-key` from the configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(conf schuko.Configuration, subfolders ...string) (string, error) {
	appkey := conf.GetString("app-key")
	tracer().Debugf("config[%s] = %s", "app-key", appkey)
	if appkey == "" {
		return "", core.Error(core.EINVALID, "application key is not set")
	}
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "user cache directory not available")
	}
	cachedir = filepath.Join(append([]string{cachedir, appkey}, subfolders...)...)
	tracer().Infof("caching in %s", cachedir)
	if _, err = os.Stat(cachedir); os.IsNotExist(err) {
		if err = os.MkdirAll(cachedir, 0755); err != nil {
			return "", core.WrapError(err, core.EINVALID, "cannot create cache directory %s", cachedir)
		}
	}
	return cachedir, nil
}
