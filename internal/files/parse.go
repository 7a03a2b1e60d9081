package files

import (
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/slok/sbxd/internal/model"
)

// parseListing parses the `stat -c statFormat` rows of the entries of dir,
// one per line. Rows that don't match the grammar are dropped, entries are
// sorted by name.
func parseListing(dir string, out string) []model.FileEntry {
	entries := []model.FileEntry{}
	for _, line := range strings.Split(out, "\n") {
		entry, err := parseStat(strings.TrimRight(line, "\r"))
		if err != nil {
			continue
		}
		if entry.Name == "." || entry.Name == ".." || entry.Name == "/" {
			continue
		}
		entry.Path = path.Join(dir, entry.Name)
		entries = append(entries, *entry)
	}

	slices.SortFunc(entries, func(a, b model.FileEntry) int { return strings.Compare(a.Name, b.Name) })
	return entries
}

// statFormat is the `stat -c` format: permissions, owner, group, size,
// modification epoch and name, tab separated.
const statFormat = "%A\t%U\t%G\t%s\t%Y\t%n"

func parseStat(out string) (*model.FileEntry, error) {
	fields := strings.SplitN(out, "\t", 6)
	if len(fields) != 6 {
		return nil, fmt.Errorf("unexpected stat output %q", out)
	}
	perms, owner, group, sizeS, epochS, name := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	if perms == "" {
		return nil, fmt.Errorf("missing permissions in stat output %q", out)
	}
	size, err := strconv.ParseInt(sizeS, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid size in stat output %q: %w", out, err)
	}
	epoch, err := strconv.ParseInt(epochS, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid modification time in stat output %q: %w", out, err)
	}

	return &model.FileEntry{
		Name:        path.Base(name),
		Path:        name,
		IsDir:       perms[0] == 'd',
		Permissions: perms,
		Owner:       owner,
		Group:       group,
		Size:        size,
		ModifiedAt:  time.Unix(epoch, 0).UTC(),
	}, nil
}
