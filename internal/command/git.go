package command

// GitTable maps version-control phrases to git invocations.
func GitTable() *Table {
	t := New("git")
	add := func(phrase string, tpl Template) {
		if err := t.Register(phrase, tpl); err != nil {
			panic(err)
		}
	}

	// Repository status and information.
	add("status", argv("git", "status"))
	add("check status", argv("git", "status"))
	add("changes", argv("git", "diff"))
	add("staged changes", argv("git", "diff", "--staged"))
	add("history", argv("git", "log", "--oneline", "-n", "10"))
	add("log", argv("git", "log", "--oneline", "-n", "10"))
	add("full log", argv("git", "log"))
	add("recent commits", argv("git", "log", "--oneline", "-n", "5"))
	add("show remotes", argv("git", "remote", "-v"))
	add("remote", argv("git", "remote", "-v"))
	add("show", oneArg("a commit or ref", func(ref string) []string {
		return []string{"git", "show", ref}
	}))

	// Adding and committing changes. The commit message travels as one
	// argv element, so spaces and shell characters in it are inert.
	add("add everything", argv("git", "add", "."))
	add("add all", argv("git", "add", "."))
	add("stage all", argv("git", "add", "."))
	add("add", joinSplit("paths to add", "git", "add"))
	add("stage", joinSplit("paths to stage", "git", "add"))
	commit := optArg(func(msg string) []string {
		return []string{"git", "commit", "-m", msg}
	}, "git", "commit")
	add("commit", commit)
	add("save", commit)
	add("commit with message", commit)
	add("amend", argv("git", "commit", "--amend"))
	add("amend commit", argv("git", "commit", "--amend"))

	// Syncing changes. sync chains pull and push, which only a shell
	// can interpret.
	add("push", argv("git", "push"))
	add("upload", argv("git", "push"))
	add("push changes", argv("git", "push"))
	add("push all", argv("git", "push", "--all"))
	add("push tags", argv("git", "push", "--tags"))
	add("force push", argv("git", "push", "--force"))
	add("pull", argv("git", "pull"))
	add("download", argv("git", "pull"))
	add("pull latest changes", argv("git", "pull"))
	add("update", argv("git", "pull"))
	add("fetch", argv("git", "fetch"))
	add("sync", sh("git pull && git push"))

	// Repository initialization.
	add("init", argv("git", "init"))
	add("start repo", argv("git", "init"))
	add("create repo", argv("git", "init"))
	add("start a new git repo", argv("git", "init"))
	clone := oneArg("a repository url", func(url string) []string {
		return []string{"git", "clone", url}
	})
	add("clone", clone)
	add("get repo", clone)
	add("download repo", clone)

	// Branch operations.
	add("branches", argv("git", "branch"))
	add("show branches", argv("git", "branch"))
	add("all branches", argv("git", "branch", "-a"))
	add("list branches", argv("git", "branch"))
	newBranch := oneArg("a branch name", func(name string) []string {
		return []string{"git", "checkout", "-b", name}
	})
	add("create branch", newBranch)
	add("new branch", newBranch)
	add("branch", optArg(func(name string) []string {
		return []string{"git", "checkout", "-b", name}
	}, "git", "branch"))
	checkout := oneArg("a branch", func(branch string) []string {
		return []string{"git", "checkout", branch}
	})
	add("switch", checkout)
	add("checkout", checkout)
	add("go to", checkout)
	add("switch to", checkout)
	add("rename branch", joinSplit("branch names", "git", "branch", "-m"))
	deleteBranch := oneArg("a branch name", func(name string) []string {
		return []string{"git", "branch", "-d", name}
	})
	add("delete branch", deleteBranch)
	add("remove branch", deleteBranch)

	// Merging and rebasing.
	merge := oneArg("a branch", func(branch string) []string {
		return []string{"git", "merge", branch}
	})
	add("merge", merge)
	add("combine", merge)
	rebase := oneArg("a branch", func(branch string) []string {
		return []string{"git", "rebase", branch}
	})
	add("rebase", rebase)
	add("rebase onto", rebase)
	add("continue rebase", argv("git", "rebase", "--continue"))
	add("abort rebase", argv("git", "rebase", "--abort"))

	// Stashing.
	add("stash", argv("git", "stash"))
	add("save changes", argv("git", "stash"))
	add("stash save", argv("git", "stash"))
	add("stash changes", argv("git", "stash"))
	add("stash list", argv("git", "stash", "list"))
	add("show stash", argv("git", "stash", "list"))
	add("pop stash", argv("git", "stash", "pop"))
	add("get stashed changes", argv("git", "stash", "pop"))
	add("apply stash", argv("git", "stash", "apply"))
	add("drop stash", argv("git", "stash", "drop"))
	add("clear stash", argv("git", "stash", "clear"))

	// Remote management.
	add("add remote", joinSplit("a name and url", "git", "remote", "add"))
	add("remove remote", oneArg("a remote name", func(name string) []string {
		return []string{"git", "remote", "remove", name}
	}))
	add("update remote", joinSplit("a name and url", "git", "remote", "set-url"))

	// Undoing changes.
	reset := optArg(func(file string) []string {
		return []string{"git", "reset", file}
	}, "git", "reset")
	add("reset", reset)
	add("unstage", reset)
	add("undo commit", argv("git", "reset", "HEAD~1"))
	add("undo last commit", argv("git", "reset", "HEAD~1"))
	add("undo", argv("git", "reset", "HEAD~1"))
	revert := oneArg("a commit", func(commit string) []string {
		return []string{"git", "revert", commit}
	})
	add("revert", revert)
	add("revert commit", revert)
	add("discard", argv("git", "checkout", "--", "."))
	add("discard changes", argv("git", "checkout", "--", "."))
	add("clean", argv("git", "clean", "-fd"))
	add("remove untracked", argv("git", "clean", "-fd"))

	// Tags.
	add("tag", optArg(func(args string) []string {
		words, err := splitArgs(args)
		if err != nil {
			words = []string{args}
		}
		return append([]string{"git", "tag"}, words...)
	}, "git", "tag"))
	add("create tag", oneArg("a tag name", func(tag string) []string {
		return []string{"git", "tag", tag}
	}))
	add("delete tag", oneArg("a tag name", func(tag string) []string {
		return []string{"git", "tag", "-d", tag}
	}))
	add("list tags", argv("git", "tag"))
	add("show tags", argv("git", "tag"))

	// Advanced operations.
	blame := oneArg("a file", func(file string) []string {
		return []string{"git", "blame", file}
	})
	add("blame", blame)
	add("who changed", blame)
	add("bisect start", argv("git", "bisect", "start"))
	add("bisect good", argv("git", "bisect", "good"))
	add("bisect bad", argv("git", "bisect", "bad"))
	add("bisect reset", argv("git", "bisect", "reset"))
	ignored := oneArg("a file", func(file string) []string {
		return []string{"git", "check-ignore", "-v", file}
	})
	add("check ignore", ignored)
	add("is ignored", ignored)
	add("gc", argv("git", "gc"))
	add("cleanup", argv("git", "gc"))
	add("compress", argv("git", "gc"))

	return t
}
