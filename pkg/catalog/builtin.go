package catalog

// builtin is the allow-list the kit ships with, sorted by name. Names are
// the identifiers the recon suite references in its sources, so the scanner
// and the reconciler both key on Name, never on Binary.
var builtin = []Tool{
	{
		Name:   "amass",
		Label:  "in-depth attack surface mapping",
		Method: MethodBrew,
		Source: "amass",
	},
	{
		Name:   "assetfinder",
		Label:  "related domain and subdomain discovery",
		Method: MethodGo,
		Source: "github.com/tomnomnom/assetfinder",
	},
	{
		Name:   "dirsearch",
		Label:  "web path brute forcing",
		Method: MethodPip,
		Source: "dirsearch",
	},
	{
		Name:   "dnsx",
		Label:  "fast DNS resolution toolkit",
		Method: MethodGo,
		Source: "github.com/projectdiscovery/dnsx/cmd/dnsx",
	},
	{
		Name:       "eyewitness",
		Binary:     "eyewitness",
		Label:      "web page screenshotting",
		Method:     MethodGit,
		Source:     "https://github.com/RedSiege/EyeWitness.git",
		Entrypoint: "Python/EyeWitness.py",
	},
	{
		Name:   "feroxbuster",
		Label:  "recursive content discovery",
		Method: MethodBrew,
		Source: "feroxbuster",
	},
	{
		Name:   "gobuster",
		Label:  "directory, DNS and vhost brute forcing",
		Method: MethodBrew,
		Source: "gobuster",
	},
	{
		Name:   "hakrawler",
		Label:  "web endpoint crawling",
		Method: MethodGo,
		Source: "github.com/hakluke/hakrawler",
	},
	{
		Name:   "hakrevdns",
		Label:  "mass reverse DNS lookups",
		Method: MethodGo,
		Source: "github.com/hakluke/hakrevdns",
	},
	{
		Name:   "httprobe",
		Label:  "probe hosts for working HTTP(S)",
		Method: MethodGo,
		Source: "github.com/tomnomnom/httprobe",
	},
	{
		Name:   "httpx",
		Label:  "HTTP probing and tech detection",
		Method: MethodGo,
		Source: "github.com/projectdiscovery/httpx/cmd/httpx",
	},
	{
		Name:   "jaeles",
		Label:  "signature-based web scanning",
		Method: MethodGo,
		Source: "github.com/jaeles-project/jaeles",
	},
	{
		Name:   "masscan",
		Label:  "internet-scale port scanning",
		Method: MethodBrew,
		Source: "masscan",
	},
	{
		Name:   "naabu",
		Label:  "fast SYN/CONNECT port scanning",
		Method: MethodGo,
		Source: "github.com/projectdiscovery/naabu/v2/cmd/naabu",
	},
	{
		Name:   "nikto",
		Label:  "web server vulnerability scanning",
		Method: MethodBrew,
		Source: "nikto",
	},
	{
		Name:   "nmap",
		Label:  "port and service scanning",
		Method: MethodBrew,
		Source: "nmap",
	},
	{
		Name:   "nuclei",
		Label:  "template-based vulnerability scanning",
		Method: MethodGo,
		Source: "github.com/projectdiscovery/nuclei/v3/cmd/nuclei",
	},
	{
		Name:   "pshtt",
		Label:  "HTTPS deployment grading",
		Method: MethodPip,
		Source: "pshtt",
	},
	{
		Name:   "sslyze",
		Label:  "TLS configuration analysis",
		Method: MethodPip,
		Source: "sslyze",
	},
	{
		Name:   "subfinder",
		Label:  "passive subdomain discovery",
		Method: MethodGo,
		Source: "github.com/projectdiscovery/subfinder/v2/cmd/subfinder",
	},
	{
		Name:   "subjack",
		Label:  "subdomain takeover detection",
		Method: MethodGo,
		Source: "github.com/haccer/subjack",
	},
	{
		Name:   "testssl",
		Binary: "testssl.sh",
		Label:  "TLS/SSL cipher and flaw checks",
		Method: MethodBrew,
		Source: "testssl",
	},
	{
		Name:   "wafw00f",
		Label:  "WAF fingerprinting",
		Method: MethodPip,
		Source: "wafw00f",
	},
	{
		Name:   "wfuzz",
		Label:  "web application fuzzing",
		Method: MethodPip,
		Source: "wfuzz",
	},
	{
		Name:   "whatweb",
		Label:  "web technology fingerprinting",
		Method: MethodBrew,
		Source: "whatweb",
	},
}
