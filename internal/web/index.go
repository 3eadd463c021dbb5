package web

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>papertrade</title>
<style>
body { font-family: -apple-system, sans-serif; background: #111; color: #eee; margin: 2rem; }
h1 { color: #73F59F; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
td, th { padding: 4px 12px; border-bottom: 1px solid #333; text-align: right; }
td:first-child, th:first-child { text-align: left; }
.up { color: #73F59F; } .down { color: #ff6b6b; }
pre { background: #1a1a1a; padding: 1rem; overflow-x: auto; }
</style>
</head>
<body>
<h1>papertrade</h1>
<h2>Quotes</h2>
<table id="quotes"><thead><tr><th>Symbol</th><th>Price</th><th>Change</th><th>%</th></tr></thead><tbody></tbody></table>
<h2>Activity</h2>
<pre id="activity">waiting for stream...</pre>
<script>
async function refreshQuotes() {
  const res = await fetch('/api/quotes');
  const quotes = await res.json();
  const body = document.querySelector('#quotes tbody');
  body.innerHTML = quotes.map(q =>
    '<tr><td>' + q.symbol + '</td><td>' + q.price.toFixed(2) +
    '</td><td class="' + (q.change >= 0 ? 'up' : 'down') + '">' + q.change.toFixed(2) +
    '</td><td>' + q.changePercent.toFixed(2) + '</td></tr>').join('');
}
refreshQuotes();
setInterval(refreshQuotes, 4000);

const source = new EventSource('/activity/stream');
source.addEventListener('activity', e => {
  document.getElementById('activity').textContent = JSON.stringify(JSON.parse(e.data), null, 2);
});
</script>
</body>
</html>
`
