package web

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Folio</title>
  <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
  <style>
    body { margin:0; padding:1.5rem; background:#ffffff; color:#111111; font-family:'Space Mono','JetBrains Mono',monospace; }
    h1 { font-size:1.1rem; letter-spacing:.12em; }
    #controls { display:flex; gap:1rem; flex-wrap:wrap; align-items:center; margin-bottom:1rem; padding:.75rem; background:#f6f6f6; }
    #controls label { font-size:.75rem; color:#4d4d4d; }
    input, select { font-family:inherit; font-size:.8rem; padding:.25rem; }
    #chartwrap { position:relative; height:60vh; }
    table { border-collapse:collapse; font-size:.7rem; margin-top:1rem; }
    th, td { border:1px solid rgba(0,0,0,.15); padding:.2rem .5rem; text-align:right; }
    th { background:#f6f6f6; }
    #table { display:none; max-height:40vh; overflow:auto; }
  </style>
</head>
<body>
  <h1>FOLIO — PORTFOLIO HISTORY</h1>
  <div id="controls">
    <label>Assets <input id="assets" placeholder="BTC,ETH (empty = all)" /></label>
    <label>From <input id="from" type="date" /></label>
    <label>To <input id="to" type="date" /></label>
    <label>View
      <select id="mode">
        <option value="balances">Asset Balances</option>
        <option value="value">USD Value</option>
      </select>
    </label>
    <label><input id="raw" type="checkbox" /> Data table</label>
    <button id="reload">Reload</button>
  </div>
  <div id="chartwrap"><canvas id="chart"></canvas></div>
  <div id="table"></div>
  <script>
    let chart;
    const palette = ['#111','#7D56F4','#43BF6D','#E06C75','#D19A66','#56B6C2','#C678DD','#888'];

    function query() {
      const p = new URLSearchParams();
      const a = document.getElementById('assets').value.trim();
      if (a) p.set('assets', a);
      const from = document.getElementById('from').value;
      if (from) p.set('from', from);
      const to = document.getElementById('to').value;
      if (to) p.set('to', to);
      return p.toString();
    }

    function render(labels, datasets, rows, cols) {
      if (chart) chart.destroy();
      chart = new Chart(document.getElementById('chart'), {
        type: 'line',
        data: { labels, datasets },
        options: { responsive: true, maintainAspectRatio: false, animation: false,
                   elements: { point: { radius: 0 } } }
      });
      const tbl = document.getElementById('table');
      tbl.style.display = document.getElementById('raw').checked ? 'block' : 'none';
      if (!document.getElementById('raw').checked) return;
      let html = '<table><tr><th>datetime</th>' + cols.map(c => '<th>'+c+'</th>').join('') + '</tr>';
      rows.forEach(r => { html += '<tr><td>'+r.ts+'</td>' + cols.map(c => '<td>'+(r[c] ?? '')+'</td>').join('') + '</tr>'; });
      tbl.innerHTML = html + '</table>';
    }

    async function reload() {
      const mode = document.getElementById('mode').value;
      const resp = await fetch('/api/' + (mode === 'value' ? 'value' : 'balances') + '?' + query());
      if (!resp.ok) { alert(await resp.text()); return; }
      const data = await resp.json();
      const assets = data.assets || [];
      if (mode === 'value') {
        const values = data.values || [];
        const labels = values.map(v => v.ts);
        const datasets = [{ label: 'Total', borderColor: palette[0], data: values.map(v => +v.total) }];
        const rows = values.map(v => ({ ts: v.ts, ...Object.fromEntries(assets.map(a => [a, v.assets[a]])), Total: v.total }));
        render(labels, datasets, rows, assets.concat(['Total']));
      } else {
        const snaps = data.snapshots || [];
        const labels = snaps.map(s => s.ts);
        const datasets = assets.map((a, i) => ({
          label: a, borderColor: palette[i % palette.length],
          data: snaps.map(s => +(s.balances[a] ?? 0))
        }));
        const rows = snaps.map(s => ({ ts: s.ts, ...s.balances }));
        render(labels, datasets, rows, assets);
      }
    }

    document.getElementById('reload').addEventListener('click', reload);
    document.getElementById('mode').addEventListener('change', reload);
    document.getElementById('raw').addEventListener('change', reload);
    reload();
  </script>
</body>
</html>`
