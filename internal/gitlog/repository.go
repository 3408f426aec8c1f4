// Package gitlog supplies the commit source the graph engine consumes:
// a topologically-ordered stream of records carrying an id, ordered
// parent ids, and a boundary flag, plus the opaque metadata (author,
// date, subject, refs) the line assembler forwards verbatim.
package gitlog

import (
	"bufio"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Repository wraps a go-git handle for ref/branch metadata together
// with the repository path used to shell out to git log, which (unlike
// go-git's own Log) returns commits from every branch in a single
// topologically-consistent order.
type Repository struct {
	repo *git.Repository
	path string
}

// Commit is one record of the commit stream: the id/parents/boundary
// triple the graph engine consumes, plus metadata opaque to the engine
// and forwarded by the line assembler.
type Commit struct {
	Hash      string
	ShortHash string
	Parents   []string
	Boundary  bool

	Author  string
	Email   string
	Date    time.Time
	Subject string
	Message string
	Refs    []Ref
}

// Ref is a named pointer (branch, remote-tracking branch, or tag)
// resolved against a commit hash.
type Ref struct {
	Name     string
	RefType  RefType
	IsHead   bool
	IsRemote bool
}

type RefType int

const (
	RefTypeBranch RefType = iota
	RefTypeTag
)

// UncommittedHash is the sentinel hash for the synthetic "uncommitted
// changes" entry some callers prepend to the stream.
const UncommittedHash = "0000000000000000000000000000000000000000"

// UncommittedShortHash is the short hash displayed for that entry.
const UncommittedShortHash = "·······"

func OpenRepository(path string) (*Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("gitlog: open %s: %w", path, err)
	}
	return &Repository{repo: repo, path: path}, nil
}

// Path returns the filesystem path of the repository root.
func (r *Repository) Path() string {
	return r.path
}

// LogOptions controls which commits Commits streams.
type LogOptions struct {
	All      bool // traverse every ref, not just HEAD
	MaxCount int  // 0 means unbounded
	Boundary bool // ask git to mark the ancestry frontier with '-'
}

// fieldSeparator must not appear in any field git log emits for the
// chosen format; NUL cannot appear in commit metadata so it is safe.
const fieldSeparator = "\x00"

// GetCommits returns up to limit commits across every ref, most recent
// first, the shape the commit-list UI walks.
func (r *Repository) GetCommits(limit int) ([]*Commit, error) {
	return r.Commits(LogOptions{All: true, MaxCount: limit})
}

// Commits runs git log with the given options and returns the full
// commit stream in the order git emits it, which is topological for
// the engine's purposes: every commit precedes its parents.
func (r *Repository) Commits(opts LogOptions) ([]*Commit, error) {
	refMap := r.buildRefMap()

	// %m prefixes every line with git's mark: '-' for a boundary
	// commit, '>' or '<' otherwise. A custom format prints no mark
	// without it.
	format := "%m%H%x00%P%x00%an%x00%ae%x00%at%x00%s"
	args := []string{"-C", r.path, "log", fmt.Sprintf("--format=%s", format)}
	if opts.All {
		args = append(args, "--all", "--topo-order")
	} else {
		args = append(args, "--topo-order")
	}
	if opts.Boundary {
		args = append(args, "--boundary")
	}
	if opts.MaxCount > 0 {
		args = append(args, fmt.Sprintf("-%d", opts.MaxCount))
	}

	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("gitlog: git log: %w", err)
	}

	var commits []*Commit
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		boundary := strings.HasPrefix(line, "-")
		line = line[1:]

		parts := strings.SplitN(line, fieldSeparator, 6)
		if len(parts) < 6 {
			continue
		}

		hash, parentStr, author, email, tsStr, subject := parts[0], parts[1], parts[2], parts[3], parts[4], parts[5]

		var parents []string
		if parentStr != "" {
			parents = strings.Split(parentStr, " ")
		}

		ts, convErr := strconv.ParseInt(tsStr, 10, 64)
		if convErr != nil {
			ts = 0
		}

		shortHash := hash
		if len(hash) >= 7 {
			shortHash = hash[:7]
		}

		commits = append(commits, &Commit{
			Hash:      hash,
			ShortHash: shortHash,
			Parents:   parents,
			Boundary:  boundary,
			Author:    author,
			Email:     email,
			Date:      time.Unix(ts, 0),
			Subject:   subject,
			Message:   subject,
			Refs:      refMap[hash],
		})
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("gitlog: scanning git log output: %w", scanErr)
	}

	return commits, nil
}

func (r *Repository) buildRefMap() map[string][]Ref {
	refMap := make(map[string][]Ref)

	head, _ := r.repo.Head()
	headName := ""
	if head != nil {
		headName = head.Name().String()
	}

	refs, err := r.repo.References()
	if err != nil {
		return refMap
	}

	refs.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash().String()
		name := ref.Name()

		switch {
		case name.IsBranch():
			refMap[hash] = append(refMap[hash], Ref{
				Name:    name.Short(),
				RefType: RefTypeBranch,
				IsHead:  name.String() == headName,
			})
		case name.IsRemote():
			refMap[hash] = append(refMap[hash], Ref{
				Name:     name.Short(),
				RefType:  RefTypeBranch,
				IsRemote: true,
			})
		case name.IsTag():
			refMap[hash] = append(refMap[hash], Ref{
				Name:    name.Short(),
				RefType: RefTypeTag,
			})
		}
		return nil
	})

	return refMap
}

// Branch is a local branch ref, used by the branch-switch modal.
type Branch struct {
	Name      string
	IsHead    bool
	IsCurrent bool
	Hash      string
}

func (r *Repository) GetBranches() ([]*Branch, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("gitlog: resolve HEAD: %w", err)
	}

	refs, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("gitlog: list references: %w", err)
	}

	var branches []*Branch
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if !ref.Name().IsBranch() {
			return nil
		}
		isHead := ref.Name() == head.Name()
		branches = append(branches, &Branch{
			Name:      ref.Name().Short(),
			IsHead:    isHead,
			IsCurrent: isHead,
			Hash:      ref.Hash().String(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gitlog: walking references: %w", err)
	}

	return branches, nil
}
