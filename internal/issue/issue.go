// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	StoreNotFoundId Id = iota + 1
	StoreExistsId
	StoreCorruptId
	StoreWriteFailedId
	HomeNotFoundId
	NameNotFoundId
	ConflictingFlagsId
	InvalidNameId
	SettingsInvalidId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue with the given glamour style ("dark", "light",
// "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if links := i.ExtLinks(); len(links) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range links {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.MarkdownMsg())+extraMd, stylePath)
}

var (
	render = glamour.Render

	storeNotFoundIssue = &Issue{
		id: StoreNotFoundId,
		mdMsg: `
# No abbreviation file here

spit keeps abbreviations in a file named ` + "`.spitconfig`" + `. The local one lives in
the current directory, the global one in your home directory.

## Things you can try
- Create a local file:
~~~
$ spit --init
~~~
- Or create the global one:
~~~
$ spit --init --global
~~~
- Or seed the local file from the global one:
~~~
$ spit --copy
~~~`,
	}

	storeExistsIssue = &Issue{
		id: StoreExistsId,
		mdMsg: `
# The abbreviation file already exists

` + "`--init`" + ` and ` + "`--copy`" + ` never overwrite an existing ` + "`.spitconfig`" + `.

## Things you can try
- Keep the file and add entries to it:
~~~
$ spit --add NAME "some text"
~~~
- Remove the file first if you really want to start over.`,
	}

	storeCorruptIssue = &Issue{
		id: StoreCorruptId,
		mdMsg: `
# The abbreviation file could not be read

The file must hold a single JSON object whose keys are non-empty names and
whose values are strings:

~~~json
{
  "hi": "hello there",
  "by": "bye"
}
~~~

## Things you can try
- Open the file and fix the JSON by hand.
- Check the current contents with ` + "`spit --list`" + ` once fixed.`,
		extLinks: []HttpLink{"https://www.json.org/json-en.html"},
	}

	storeWriteFailedIssue = &Issue{
		id: StoreWriteFailedId,
		mdMsg: `
# The abbreviation file could not be written

## Things you can try
- Check that you have write permission on the file and its directory.
- Check that the disk is not full.`,
	}

	homeNotFoundIssue = &Issue{
		id: HomeNotFoundId,
		mdMsg: `
# Home directory not found

The global abbreviation file lives in your home directory, which could not be
determined.

## Things you can try
- Make sure the ` + "`HOME`" + ` environment variable is set (` + "`USERPROFILE`" + ` on Windows).
- Use the local file instead by dropping ` + "`--global`" + `.`,
	}

	nameNotFoundIssue = &Issue{
		id: NameNotFoundId,
		mdMsg: `
# Abbreviation not found

A name was neither in the local file nor in the global one.

## Things you can try
- List what is defined:
~~~
$ spit --list
$ spit --list --global
~~~
- Print unknown names as they are:
~~~
$ spit --pass NAME
~~~
- Skip unknown names with a warning:
~~~
$ spit --warn NAME
~~~`,
	}

	conflictingFlagsIssue = &Issue{
		id: ConflictingFlagsId,
		mdMsg: `
# Conflicting flags

` + "`--init`" + ` creates an empty file and ` + "`--copy`" + ` creates a file from the global
one. Pick one of them.`,
	}

	invalidNameIssue = &Issue{
		id: InvalidNameId,
		mdMsg: `
# Invalid abbreviation name

Names must not be empty.

~~~
$ spit --add hi "hello there"
~~~`,
	}

	settingsInvalidIssue = &Issue{
		id: SettingsInvalidId,
		mdMsg: `
# Settings file could not be loaded

spit reads optional defaults from a CUE file. When it is invalid the
built-in defaults are used instead.

## Example
~~~cue
defaults: {
	sep:    " "
	warn:   true
	format: "text"
}
ui: verbose: false
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	issues = map[Id]*Issue{
		storeNotFoundIssue.Id():    storeNotFoundIssue,
		storeExistsIssue.Id():      storeExistsIssue,
		storeCorruptIssue.Id():     storeCorruptIssue,
		storeWriteFailedIssue.Id(): storeWriteFailedIssue,
		homeNotFoundIssue.Id():     homeNotFoundIssue,
		nameNotFoundIssue.Id():     nameNotFoundIssue,
		conflictingFlagsIssue.Id(): conflictingFlagsIssue,
		invalidNameIssue.Id():      invalidNameIssue,
		settingsInvalidIssue.Id():  settingsInvalidIssue,
	}
)

func Get(id Id) *Issue {
	return issues[id]
}
