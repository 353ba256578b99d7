package core

import "slices"

// CommandKind enumerates the view commands the UI can dispatch.
type CommandKind int

const (
	CommandFilter CommandKind = iota
	CommandSort
	CommandSetPageSize
	CommandGoToPage
)

func (k CommandKind) String() string {
	switch k {
	case CommandFilter:
		return "filter"
	case CommandSort:
		return "sort"
	case CommandSetPageSize:
		return "page_size"
	case CommandGoToPage:
		return "go_to_page"
	}
	return "unknown"
}

// Command is a single user action against the view cursor.
// Only the field matching Kind is read.
type Command struct {
	Kind     CommandKind
	Query    string
	Field    SortField
	PageSize int
	Page     int
}

// Filter builds a filter command.
func Filter(query string) Command { return Command{Kind: CommandFilter, Query: query} }

// Sort builds a sort command for a column header click.
func Sort(field SortField) Command { return Command{Kind: CommandSort, Field: field} }

// SetPageSize builds a page-size command.
func SetPageSize(size int) Command { return Command{Kind: CommandSetPageSize, PageSize: size} }

// GoToPage builds a navigation command.
func GoToPage(page int) Command { return Command{Kind: CommandGoToPage, Page: page} }

// Dispatch applies cmd to the view cursor. It reports whether the view
// changed; rejected commands (unknown sort field, unlisted page size, page out
// of range) are no-ops.
func (vm *ViewModel) Dispatch(cmd Command) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	s := &vm.state
	switch cmd.Kind {
	case CommandFilter:
		s.Query = cmd.Query
		s.Page = 1
		return true

	case CommandSort:
		if _, ok := ParseSortField(string(cmd.Field)); !ok {
			return false
		}
		if s.SortKey == cmd.Field {
			s.SortDir = s.SortDir.Toggle()
		} else {
			s.SortKey = cmd.Field
			s.SortDir = SortAsc
		}
		return true

	case CommandSetPageSize:
		if !slices.Contains(vm.pageSizes, cmd.PageSize) {
			return false
		}
		s.PageSize = cmd.PageSize
		s.Page = 1
		return true

	case CommandGoToPage:
		total := s.TotalPages(len(s.Filtered()))
		if cmd.Page < 1 || cmd.Page > total {
			return false
		}
		s.Page = cmd.Page
		return true
	}

	return false
}
