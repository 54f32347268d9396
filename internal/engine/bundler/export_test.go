package bundler

var ParseRequires = parseRequires
