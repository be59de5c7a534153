package command

import (
	"os/exec"
	"runtime"
	"sync"
)

// pythonExe and pipExe prefer the versioned binaries when present.
// The lookup happens once per process, like the interpreter choice a
// user makes when they open a terminal.
var pythonExe = sync.OnceValue(func() string {
	if _, err := exec.LookPath("python3"); err == nil {
		return "python3"
	}
	return "python"
})

var pipExe = sync.OnceValue(func() string {
	if _, err := exec.LookPath("pip3"); err == nil {
		return "pip3"
	}
	return "pip"
})

// PythonTable maps Python workflow phrases to python, pip, and the
// common tooling around them.
func PythonTable() *Table {
	t := New("python")
	add := func(phrase string, tpl Template) {
		if err := t.Register(phrase, tpl); err != nil {
			panic(err)
		}
	}
	py := pythonExe()
	pip := pipExe()

	// Running scripts.
	runScript := oneArg("a script", func(script string) []string {
		return []string{pythonExe(), script}
	})
	add("run", runScript)
	add("run python", runScript)
	add("execute", runScript)
	add("python", runScript)
	add("start", runScript)
	add("run script", runScript)
	add("run with args", joinSplit("a script", pythonExe()))
	add("debug", oneArg("a script", func(script string) []string {
		return []string{pythonExe(), "-m", "pdb", script}
	}))

	// Virtual environments. Activation only makes sense inside the
	// user's own shell, so those phrases stay shell lines even though
	// the effect cannot outlive the child process.
	venv := argv(py, "-m", "venv", "venv")
	add("create env", venv)
	add("make env", venv)
	add("setup env", venv)
	add("new venv", venv)
	add("create environment", venv)
	add("create virtual environment", venv)
	activate := sh("source venv/bin/activate")
	if runtime.GOOS == "windows" {
		activate = sh(`venv\Scripts\activate`)
	}
	add("activate env", activate)
	add("activate", activate)
	add("activate venv", activate)
	add("use env", activate)
	add("deactivate", sh("deactivate"))
	add("deactivate env", sh("deactivate"))
	add("exit env", sh("deactivate"))
	add("leave env", sh("deactivate"))

	// Package management.
	pipInstall := oneArg("a package name", func(pkg string) []string {
		return []string{pipExe(), "install", pkg}
	})
	add("install", pipInstall)
	add("add", pipInstall)
	add("add package", pipInstall)
	add("install package", pipInstall)
	add("pip install", pipInstall)
	pipUninstall := oneArg("a package name", func(pkg string) []string {
		return []string{pipExe(), "uninstall", pkg, "-y"}
	})
	add("uninstall", pipUninstall)
	add("remove", pipUninstall)
	add("remove package", pipUninstall)
	add("uninstall package", pipUninstall)
	pipUpgrade := oneArg("a package name", func(pkg string) []string {
		return []string{pipExe(), "install", "--upgrade", pkg}
	})
	add("update", pipUpgrade)
	add("upgrade", pipUpgrade)
	add("update package", pipUpgrade)
	add("upgrade package", pipUpgrade)

	// Requirements files.
	reqs := argv(pip, "install", "-r", "requirements.txt")
	add("install requirements", reqs)
	add("install deps", reqs)
	add("install dependencies", reqs)
	freeze := sh("pip freeze > requirements.txt")
	add("save requirements", freeze)
	add("freeze requirements", freeze)
	add("generate requirements", freeze)
	add("create requirements", freeze)
	add("export requirements", freeze)

	// Editable installs.
	editable := argv(pip, "install", "-e", ".")
	add("install dev", editable)
	add("install editable", editable)
	add("develop", editable)
	add("dev install", editable)
	add("install self", editable)

	// Package information.
	add("list", argv(pip, "list"))
	add("list packages", argv(pip, "list"))
	add("show packages", argv(pip, "list"))
	add("installed packages", argv(pip, "list"))
	add("outdated", argv(pip, "list", "--outdated"))
	add("outdated packages", argv(pip, "list", "--outdated"))
	add("check updates", argv(pip, "list", "--outdated"))
	pipShow := oneArg("a package name", func(pkg string) []string {
		return []string{pipExe(), "show", pkg}
	})
	add("show package", pipShow)
	add("info", pipShow)
	add("about", pipShow)

	// Version information.
	add("pip version", argv(pip, "--version"))
	add("python version", argv(py, "--version"))
	add("check version", argv(py, "--version"))
	add("upgrade pip", argv(pip, "install", "--upgrade", "pip"))
	add("update pip", argv(pip, "install", "--upgrade", "pip"))

	// Testing and linting.
	add("test", argv("pytest"))
	add("run tests", argv("pytest"))
	add("tests", argv("pytest"))
	add("unit tests", argv("pytest"))
	add("pytest", argv("pytest"))
	add("lint", argv("flake8"))
	add("check style", argv("flake8"))
	add("flake8", argv("flake8"))
	add("format", argv("black", "."))
	add("black", argv("black", "."))
	add("format code", argv("black", "."))
	add("mypy", argv("mypy", "."))
	add("type check", argv("mypy", "."))
	add("check types", argv("mypy", "."))

	// Django.
	add("django start", argv(py, "manage.py", "runserver"))
	add("django run", argv(py, "manage.py", "runserver"))
	add("django server", argv(py, "manage.py", "runserver"))
	add("django shell", argv(py, "manage.py", "shell"))
	add("django migrate", argv(py, "manage.py", "migrate"))
	add("django migrations", argv(py, "manage.py", "makemigrations"))
	add("django make migrations", argv(py, "manage.py", "makemigrations"))
	add("django admin", optArg(func(name string) []string {
		return []string{pythonExe(), "manage.py", "createsuperuser", "--username", name}
	}, py, "manage.py", "createsuperuser"))
	add("django superuser", argv(py, "manage.py", "createsuperuser"))

	// Flask.
	add("flask run", argv("flask", "run"))
	add("flask dev", argv("flask", "run", "--debug"))
	add("flask debug", argv("flask", "run", "--debug"))
	add("flask shell", argv("flask", "shell"))

	// Building and publishing.
	build := argv(py, "-m", "build")
	add("build", build)
	add("build package", build)
	add("package", build)
	add("dist", build)
	add("create dist", build)
	publish := argv("twine", "upload", "dist/*")
	add("publish", publish)
	add("upload package", publish)
	add("upload to pypi", publish)
	add("publish to pypi", publish)
	testPublish := argv("twine", "upload", "--repository-url", "https://test.pypi.org/legacy/", "dist/*")
	add("test publish", testPublish)
	add("publish to test", testPublish)

	// Notebooks and shells.
	add("notebook", argv("jupyter", "notebook"))
	add("jupyter", argv("jupyter", "notebook"))
	add("start notebook", argv("jupyter", "notebook"))
	add("jupyter lab", argv("jupyter", "lab"))
	add("lab", argv("jupyter", "lab"))
	add("ipython", argv("ipython"))
	add("shell", argv("ipython"))
	add("interactive", argv("ipython"))

	// Documentation.
	docs := argv("sphinx-build", "-b", "html", "docs/source", "docs/build/html")
	add("docs", docs)
	add("build docs", docs)
	add("documentation", docs)
	add("sphinx", docs)

	// Other tooling.
	add("pycodestyle", argv("pycodestyle", "."))
	add("autopep8", argv("autopep8", "--in-place", "--aggressive", "--aggressive", "."))
	add("coverage", argv("coverage", "run", "-m", "pytest"))
	add("coverage report", argv("coverage", "report"))

	return t
}
