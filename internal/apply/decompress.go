package apply

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/codexup/codexup/internal/logging"
	"github.com/codexup/codexup/internal/release"
)

var fileTypes = []struct {
	ext        string
	decompress func(src io.Reader, cmd, os string) (io.Reader, error)
}{
	{".zip", unzip},
	{".tar.gz", untar},
	{".tgz", untar},
	{".gzip", gunzip},
	{".gz", gunzip},
	{".tar.xz", untarxz},
	{".xz", unxz},
	{".bz2", unbz2},
}

// decompressCommand decompresses the given artifact content. Archive and
// compression format is detected from the artifact name. This returns a
// reader on the command executable found inside: '.zip', '.tar.gz',
// '.tar.xz', '.tgz', '.gz', '.bz2' and '.xz' are supported, anything else is
// assumed to be the raw binary.
func decompressCommand(src io.Reader, assetName, cmd, os string) (io.Reader, error) {
	for _, fileType := range fileTypes {
		if strings.HasSuffix(assetName, fileType.ext) {
			return fileType.decompress(src, cmd, os)
		}
	}
	logging.Print("artifact is not compressed")
	return src, nil
}

func unzip(src io.Reader, cmd, os string) (io.Reader, error) {
	logging.Print("decompressing zip file")

	// Zip format requires its file size for decompressing.
	// So we need to read the whole content into a buffer at first.
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer for zip file: %w", err)
	}

	r := bytes.NewReader(buf)
	z, err := zip.NewReader(r, r.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to decompress zip file: %w", err)
	}

	var candidates []*zip.File
	for _, file := range z.File {
		_, name := filepath.Split(file.Name)
		if !file.FileInfo().IsDir() && release.IsCommandName(name, cmd) {
			candidates = append(candidates, file)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("file %q is not found in the archive", cmd)
	}

	selected := candidates[0]
	if os == "windows" {
		for _, candidate := range candidates {
			if strings.HasSuffix(strings.ToLower(candidate.Name), ".exe") {
				selected = candidate
				break
			}
		}
	}
	logging.Printf("executable file %q was found in zip archive", selected.Name)
	return selected.Open()
}

func untar(src io.Reader, cmd, os string) (io.Reader, error) {
	logging.Print("decompressing tar.gz file")

	gz, err := gzip.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress .tar.gz file: %w", err)
	}

	return unarchiveTar(gz, cmd)
}

func gunzip(src io.Reader, cmd, os string) (io.Reader, error) {
	logging.Print("decompressing gzip file")

	r, err := gzip.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress gzip file: %w", err)
	}

	name := r.Header.Name
	if name != "" && !release.IsCommandName(name, cmd) {
		return nil, fmt.Errorf("file name %q does not match the command %q", name, cmd)
	}

	logging.Printf("executable file %q was found in gzip file", name)
	return r, nil
}

func untarxz(src io.Reader, cmd, os string) (io.Reader, error) {
	logging.Print("decompressing tar.xz file")

	xzip, err := xz.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress .tar.xz file: %w", err)
	}

	return unarchiveTar(xzip, cmd)
}

func unxz(src io.Reader, cmd, os string) (io.Reader, error) {
	logging.Print("decompressing xzip file")

	xzip, err := xz.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress xzip file: %w", err)
	}

	logging.Printf("decompressed file from xzip is assumed to be an executable: %s", cmd)
	return xzip, nil
}

func unbz2(src io.Reader, cmd, os string) (io.Reader, error) {
	logging.Print("decompressing bzip2 file")

	bz2 := bzip2.NewReader(src)

	logging.Printf("decompressed file from bzip2 is assumed to be an executable: %s", cmd)
	return bz2, nil
}

func unarchiveTar(src io.Reader, cmd string) (io.Reader, error) {
	t := tar.NewReader(src)
	for {
		h, err := t.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to unarchive tar file: %w", err)
		}
		if h.Typeflag != tar.TypeReg {
			continue
		}
		_, name := filepath.Split(h.Name)
		if release.IsCommandName(name, cmd) {
			logging.Printf("executable file %q was found in tar archive", h.Name)
			return t, nil
		}
	}
	return nil, fmt.Errorf("file %q is not found in tar", cmd)
}
